package middleware

import (
	"net/http"
	"strings"

	"github.com/anzhiyu-c/anheyu-site/pkg/service/revalidate"

	"github.com/gin-gonic/gin"
)

// Cors 只对 API 路由写入跨域头，页面请求交给前端自己处理。
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/api/") {
			origin := c.Request.Header.Get("Origin")
			if origin != "" {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, "+revalidate.TokenHeader)
			c.Header("Access-Control-Max-Age", "600")

			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}

		c.Next()
	}
}
