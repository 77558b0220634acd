/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:55
 * @LastEditTime: 2025-10-24 18:58:21
 * @LastEditors: 安知鱼
 */
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-site/internal/app/middleware"
	album_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/album"
	sitemap_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/sitemap"
	theme_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/theme"
	version_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/version"
	webhook_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/webhook"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/revalidate"
)

// NoCacheMiddleware 反缓存中间件，用于不应被 CDN 缓存的接口
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}

// Options 路由级别的中间件配置
type Options struct {
	// RateLimit 作用于 /api/public 的限流中间件，为 nil 时不限流
	RateLimit gin.HandlerFunc
	// FrontendProxy 作用于所有未被网关处理的请求，为 nil 时返回 404
	FrontendProxy gin.HandlerFunc
	// WebhookToken 回调接口的共享令牌，为空时回调接口关闭
	WebhookToken string
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	sitemapHandler *sitemap_handler.Handler
	themeHandler   *theme_handler.Handler
	albumHandler   *album_handler.Handler
	webhookHandler *webhook_handler.Handler
	versionHandler *version_handler.Handler
	opts           Options
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
func NewRouter(
	sitemapHandler *sitemap_handler.Handler,
	themeHandler *theme_handler.Handler,
	albumHandler *album_handler.Handler,
	webhookHandler *webhook_handler.Handler,
	versionHandler *version_handler.Handler,
	opts Options,
) *Router {
	return &Router{
		sitemapHandler: sitemapHandler,
		themeHandler:   themeHandler,
		albumHandler:   albumHandler,
		webhookHandler: webhookHandler,
		versionHandler: versionHandler,
		opts:           opts,
	}
}

// Setup 将所有路由注册到 Gin 引擎。
func (r *Router) Setup(engine *gin.Engine) {
	// 全局中间件在路由匹配失败时同样执行，前端代理必须放在最后
	engine.Use(middleware.Cors(), middleware.AlbumCanonicalRedirect())
	if r.opts.FrontendProxy != nil {
		engine.Use(r.opts.FrontendProxy)
	}

	r.registerSitemapRoutes(engine) // 直接注册到engine，不使用/api前缀

	apiGroup := engine.Group("/api")
	r.registerWebhookRoutes(apiGroup)

	publicGroup := apiGroup.Group("/public")
	if r.opts.RateLimit != nil {
		publicGroup.Use(r.opts.RateLimit)
	}
	r.registerThemeRoutes(publicGroup)
	r.registerAlbumRoutes(publicGroup)
	r.registerVersionRoutes(publicGroup)
	publicGroup.GET("/sitemap/paths", NoCacheMiddleware(), r.sitemapHandler.GetPaths)
}

func (r *Router) registerSitemapRoutes(engine *gin.Engine) {
	engine.GET("/sitemap.xml", r.sitemapHandler.GetSitemap)
	engine.HEAD("/sitemap.xml", r.sitemapHandler.GetSitemap)
	engine.GET("/robots.txt", r.sitemapHandler.GetRobots)
}

func (r *Router) registerWebhookRoutes(api *gin.RouterGroup) {
	api.POST("/revalidate",
		NoCacheMiddleware(),
		middleware.TokenAuth(revalidate.TokenHeader, r.opts.WebhookToken),
		r.webhookHandler.Revalidate,
	)
}

func (r *Router) registerThemeRoutes(public *gin.RouterGroup) {
	public.GET("/theme.css", r.themeHandler.GetStylesheet)
	public.GET("/theme/preview.css", r.themeHandler.GetPreview)
}

func (r *Router) registerAlbumRoutes(public *gin.RouterGroup) {
	public.GET("/album-filter", r.albumHandler.GetFilter)
	public.GET("/album-config", NoCacheMiddleware(), r.albumHandler.GetConfig)
}

func (r *Router) registerVersionRoutes(public *gin.RouterGroup) {
	public.GET("/version", r.versionHandler.GetVersion)
	public.GET("/version/string", r.versionHandler.GetVersionString)
}
