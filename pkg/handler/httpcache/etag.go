// Package httpcache 提供基于内容的 ETag 与条件请求处理。
package httpcache

import (
	"crypto/md5"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ETag 根据内容生成强 ETag
func ETag(content []byte) string {
	return fmt.Sprintf(`"site-%x"`, md5.Sum(content))
}

// NotModified 写入 ETag 头，客户端缓存仍然有效时返回 304 并报告 true
func NotModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	c.Header("Vary", "Accept-Encoding")
	for _, candidate := range strings.Split(c.GetHeader("If-None-Match"), ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			c.Status(http.StatusNotModified)
			return true
		}
	}
	return false
}
