/*
 * @Description: 后端数据变更回调处理器
 * @Author: 安知鱼
 * @Date: 2025-10-22 09:48:03
 * @LastEditTime: 2025-10-24 18:36:19
 * @LastEditors: 安知鱼
 */
package webhook

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/anzhiyu-c/anheyu-site/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-site/pkg/response"

	"github.com/gin-gonic/gin"
)

// 回调类型
const (
	TypeConfig  = "config"
	TypeContent = "content"
	TypeAll     = "all"
)

// RevalidateRequest 后端在数据变更后发送的通知
type RevalidateRequest struct {
	// Type 为 config、content 或 all，省略时视为 all
	Type string `json:"type"`
	// Slug 文章的 abbrlink 或 ID，仅 content 类型使用
	Slug string `json:"slug"`
}

// Handler 回调处理器，令牌校验由路由上的中间件完成
type Handler struct {
	bus *event.EventBus
}

// NewHandler 创建回调处理器
func NewHandler(bus *event.EventBus) *Handler {
	return &Handler{bus: bus}
}

// Revalidate 接收后端变更通知并发布对应事件，处理在后台异步完成
// @Summary      数据变更通知
// @Tags         回调
// @Accept       json
// @Produce      json
// @Param        x-revalidate-token  header  string  true  "共享令牌"
// @Param        body  body  RevalidateRequest  false  "通知内容"
// @Success      202  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /revalidate [post]
func (h *Handler) Revalidate(c *gin.Context) {
	var req RevalidateRequest
	// 空请求体等同于 {"type":"all"}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Fail(c, http.StatusBadRequest, "请求体格式错误")
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.Type))
	if kind == "" {
		kind = TypeAll
	}

	var topics []event.Topic
	switch kind {
	case TypeConfig:
		h.bus.Publish(event.SiteConfigUpdated, nil)
		topics = append(topics, event.SiteConfigUpdated)
	case TypeContent:
		h.bus.Publish(event.ContentUpdated, &event.ContentPayload{Slug: strings.TrimSpace(req.Slug)})
		topics = append(topics, event.ContentUpdated)
	case TypeAll:
		// 配置变更的处理已包含站点地图重建，内容事件使用空 slug 以清理前端全部缓存
		h.bus.Publish(event.SiteConfigUpdated, nil)
		h.bus.Publish(event.ContentUpdated, &event.ContentPayload{})
		topics = append(topics, event.SiteConfigUpdated, event.ContentUpdated)
	default:
		response.Fail(c, http.StatusBadRequest, "未知的通知类型: "+req.Type)
		return
	}

	log.Printf("[Webhook] 收到 %s 通知，已发布事件 %v", kind, topics)
	response.SuccessWithStatus(c, http.StatusAccepted, gin.H{"type": kind, "topics": topics}, "已接收")
}
