/*
 * @Description: 站点地图处理器
 * @Author: 安知鱼
 * @Date: 2025-09-21 00:00:00
 * @LastEditTime: 2025-10-24 18:20:44
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/handler/httpcache"
	"github.com/anzhiyu-c/anheyu-site/pkg/response"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/sitemap"

	"github.com/gin-gonic/gin"
)

// Handler 站点地图处理器
type Handler struct {
	sitemapService sitemap.Service
}

// NewHandler 创建站点地图处理器
func NewHandler(sitemapService sitemap.Service) *Handler {
	return &Handler{
		sitemapService: sitemapService,
	}
}

// GetSitemap 获取站点地图
// @Summary      获取站点地图
// @Description  获取XML格式的站点地图
// @Tags         辅助工具
// @Produce      xml
// @Success      200  {string}  string  "XML格式的站点地图"
// @Failure      503  {string}  string  "站点地址未配置"
// @Router       /sitemap.xml [get]
func (h *Handler) GetSitemap(c *gin.Context) {
	body, err := h.sitemapService.Render(c.Request.Context())
	if err != nil {
		if errors.Is(err, constant.ErrSiteURLMissing) {
			c.String(http.StatusServiceUnavailable, "站点地址未配置，无法生成站点地图")
			return
		}
		log.Printf("[Sitemap] 生成站点地图失败: %v", err)
		c.String(http.StatusInternalServerError, "生成站点地图失败")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	if httpcache.NotModified(c, httpcache.ETag(body)) {
		return
	}
	c.Header("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, "text/xml; charset=utf-8", body)
}

// GetRobots 获取robots.txt
// @Summary      获取robots.txt
// @Description  获取搜索引擎爬虫规则文件
// @Tags         辅助工具
// @Produce      plain
// @Success      200  {string}  string  "robots.txt内容"
// @Router       /robots.txt [get]
func (h *Handler) GetRobots(c *gin.Context) {
	robotsContent, err := h.sitemapService.Robots(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "生成robots.txt失败")
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(robotsContent))
}

// GetPaths 获取站点地图中的全部站内路径
// @Summary      获取站点地图路径
// @Tags         辅助工具
// @Produce      json
// @Success      200  {object}  response.Response{data=object{paths=[]string,total=int}}
// @Router       /public/sitemap/paths [get]
func (h *Handler) GetPaths(c *gin.Context) {
	paths, err := h.sitemapService.Paths(c.Request.Context())
	if err != nil {
		response.FailWithError(c, err, "")
		return
	}
	response.Success(c, gin.H{"paths": paths, "total": len(paths)}, "获取站点路径成功")
}
