/*
 * @Description: 频率限制中间件
 * @Author: 安知鱼
 * @Date: 2025-11-08 00:00:00
 * @LastEditTime: 2025-10-24 17:48:30
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-site/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

// ipRateLimiter 为每个客户端 IP 维护一个令牌桶
type ipRateLimiter struct {
	limiters map[string]*limiterInfo
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// limiterInfo 存储限流器及其最后访问时间
type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

// newIPRateLimiter 创建IP限流器，rps 为每秒补充的令牌数
func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &ipRateLimiter{
		limiters: make(map[string]*limiterInfo),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// getLimiter 获取指定IP的限流器
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	info, exists := i.limiters[ip]
	if !exists {
		info = &limiterInfo{limiter: rate.NewLimiter(i.limit, i.burst)}
		i.limiters[ip] = info
	}
	info.lastAccessed = i.now()
	return info.limiter
}

// cleanup 删除超过 limiterIdleTimeout 未访问的限流器，返回删除数量
func (i *ipRateLimiter) cleanup() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	removed := 0
	for ip, info := range i.limiters {
		if i.now().Sub(info.lastAccessed) > limiterIdleTimeout {
			delete(i.limiters, ip)
			removed++
		}
	}
	return removed
}

// cleanupStaleEntries 定期清理，stop 关闭后退出
func (i *ipRateLimiter) cleanupStaleEntries(stop <-chan struct{}) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			i.cleanup()
		case <-stop:
			return
		}
	}
}

// TrustProxies 设置可信代理，proxies 为逗号分隔的 IP 或 CIDR。
// 只有来自可信代理的请求才读取 X-Forwarded-For / X-Real-IP，其余直接使用连接地址，
// 避免客户端伪造请求头绕过限流。为空时不信任任何代理。
func TrustProxies(engine *gin.Engine, proxies string) error {
	var list []string
	for _, p := range strings.Split(proxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return engine.SetTrustedProxies(list)
}

// RateLimit 按客户端IP限流，rps <= 0 时不限流。stop 关闭后停止后台清理。
func RateLimit(rps float64, burst int, stop <-chan struct{}) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := newIPRateLimiter(rps, burst)
	go limiter.cleanupStaleEntries(stop)

	return func(c *gin.Context) {
		if !limiter.getLimiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			response.Fail(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
