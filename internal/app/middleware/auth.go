// internal/app/middleware/auth.go
package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/anzhiyu-c/anheyu-site/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenAuth 校验请求头中携带的共享令牌，用于后端回调接口。
// 未配置令牌时接口整体关闭。
func TokenAuth(header, token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Fail(c, http.StatusForbidden, "回调接口未启用")
			c.Abort()
			return
		}

		got := c.GetHeader(header)
		if got == "" {
			response.Fail(c, http.StatusUnauthorized, "请求未携带Token，无权限访问")
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			log.Printf("[TokenAuth] 来自 %s 的令牌校验失败", c.ClientIP())
			response.Fail(c, http.StatusUnauthorized, "无效的Token")
			c.Abort()
			return
		}

		c.Next()
	}
}
