/*
 * @Description: 主题样式处理器
 * @Author: 安知鱼
 * @Date: 2025-09-18 11:00:00
 * @LastEditTime: 2025-10-24 18:24:10
 * @LastEditors: 安知鱼
 */
package theme

import (
	"net/http"
	"strings"

	"github.com/anzhiyu-c/anheyu-site/pkg/handler/httpcache"
	"github.com/anzhiyu-c/anheyu-site/pkg/response"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/theme"

	"github.com/gin-gonic/gin"
)

const cssContentType = "text/css; charset=utf-8"

// Handler 主题样式处理器
type Handler struct {
	themeService theme.Service
}

// NewHandler 创建主题样式处理器实例
func NewHandler(themeService theme.Service) *Handler {
	return &Handler{
		themeService: themeService,
	}
}

// GetStylesheet 获取当前主题变量样式表
// @Summary      获取主题样式
// @Tags         主题
// @Produce      text/css
// @Success      200  {string}  string  "CSS"
// @Router       /public/theme.css [get]
func (h *Handler) GetStylesheet(c *gin.Context) {
	css := []byte(h.themeService.Stylesheet())
	c.Header("Cache-Control", "public, max-age=300")
	if httpcache.NotModified(c, httpcache.ETag(css)) {
		return
	}
	c.Data(http.StatusOK, cssContentType, css)
}

// GetPreview 临时应用查询参数中的 CSS 变量并返回样式表，不影响当前主题
// @Summary      预览主题样式
// @Description  形如 ?--anzhiyu-main=%23ff0000 的参数会覆盖同名变量，值为空表示移除
// @Tags         主题
// @Produce      text/css
// @Success      200  {string}  string  "CSS"
// @Failure      400  {object}  response.Response  "变量名或值不合法"
// @Router       /public/theme/preview.css [get]
func (h *Handler) GetPreview(c *gin.Context) {
	overrides := make(map[string]string)
	for name, values := range c.Request.URL.Query() {
		if !strings.HasPrefix(name, "--") || len(values) == 0 {
			continue
		}
		overrides[name] = values[0]
	}

	css, err := h.themeService.Preview(overrides)
	if err != nil {
		response.FailWithError(c, err, "")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, cssContentType, []byte(css))
}
