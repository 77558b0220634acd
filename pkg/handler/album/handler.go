/*
 * @Description: 相册筛选与配置处理器
 * @Author: 安知鱼
 * @Date: 2025-10-21 16:02:10
 * @LastEditTime: 2025-10-24 18:30:52
 * @LastEditors: 安知鱼
 */
package album

import (
	"github.com/anzhiyu-c/anheyu-site/pkg/albumconfig"
	"github.com/anzhiyu-c/anheyu-site/pkg/albumfilter"
	"github.com/anzhiyu-c/anheyu-site/pkg/response"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"

	"github.com/gin-gonic/gin"
)

// Handler 相册处理器
type Handler struct {
	settingSvc setting.SettingService
}

// NewHandler 创建相册处理器
func NewHandler(settingSvc setting.SettingService) *Handler {
	return &Handler{settingSvc: settingSvc}
}

// FilterResponse 相册筛选解析结果
type FilterResponse struct {
	Query     albumfilter.Query `json:"query"`
	Canonical string            `json:"canonical"`
	Changed   bool              `json:"changed"`
	SortKeys  []string          `json:"sortKeys"`
}

// GetFilter 解析相册页查询串
// @Summary      解析相册筛选参数
// @Description  query 参数为相册页的原始查询串，省略时解析当前请求自身的其他参数
// @Tags         相册
// @Produce      json
// @Param        query  query  string  false  "原始查询串，例如 ?categoryId=3&sort=created_at_desc"
// @Success      200  {object}  response.Response{data=FilterResponse}
// @Router       /public/album-filter [get]
func (h *Handler) GetFilter(c *gin.Context) {
	raw, ok := c.GetQuery("query")
	if !ok {
		raw = c.Request.URL.RawQuery
	}

	canonical, changed := albumfilter.Canonical(raw)
	response.Success(c, FilterResponse{
		Query:     albumfilter.Parse(raw),
		Canonical: canonical,
		Changed:   changed,
		SortKeys:  albumfilter.SortKeys,
	}, "解析成功")
}

// GetConfig 获取相册页配置
// @Summary      获取相册配置
// @Tags         相册
// @Produce      json
// @Success      200  {object}  response.Response{data=albumconfig.Config}
// @Router       /public/album-config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, albumconfig.Parse(h.settingSvc.GetSiteConfig()), "获取相册配置成功")
}
