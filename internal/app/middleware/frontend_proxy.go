/*
 * 前端反向代理中间件
 * 网关自身不处理的页面请求全部转发给 Next.js 前端
 */
package middleware

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultSkipPaths 始终由网关处理的精确路径
var DefaultSkipPaths = []string{
	"/robots.txt",
	"/sitemap.xml",
	"/rss.xml",
	"/feed.xml",
	"/atom.xml",
}

// DefaultSkipPrefixes 始终由网关处理的路径前缀
var DefaultSkipPrefixes = []string{
	"/api/",
}

// FrontendProxy 创建前端反向代理中间件，target 为空时中间件不做任何事
func FrontendProxy(target string) (gin.HandlerFunc, error) {
	if strings.TrimSpace(target) == "" {
		return func(c *gin.Context) { c.Next() }, nil
	}
	targetURL, err := url.Parse(target)
	if err != nil || targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("无效的前端地址 %q", target)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	originalDirector := proxy.Director
	proxy.Director = func(req *http.Request) {
		// Director 执行前记录原始 Host
		originalHost := req.Host
		originalDirector(req)
		req.Host = req.URL.Host
		req.Header.Set("X-Forwarded-Host", originalHost)
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("[前端代理] 错误: %v (目标: %s, 路径: %s)", err, targetURL.Host, r.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>站点暂时不可用</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; text-align: center; padding: 50px; }
        h1 { color: #333; }
        p { color: #666; }
    </style>
</head>
<body>
    <h1>站点暂时不可用</h1>
    <p>页面 "%s" 正在更新中，请稍后重试。</p>
</body>
</html>`, html.EscapeString(r.URL.Path))
	}

	return func(c *gin.Context) {
		if shouldSkipProxy(c.Request.URL.Path) {
			c.Next()
			return
		}
		c.Request.Header.Set("X-Real-IP", c.ClientIP())
		proxy.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}, nil
}

// shouldSkipProxy 判断路径是否由网关自己处理
func shouldSkipProxy(path string) bool {
	for _, exact := range DefaultSkipPaths {
		if path == exact {
			return true
		}
	}
	for _, prefix := range DefaultSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
