/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-10-17 10:35:28
 * @LastEditTime: 2025-10-24 19:30:05
 * @LastEditors: 安知鱼
 */
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/anheyu-site/internal/app/bootstrap"
	"github.com/anzhiyu-c/anheyu-site/internal/app/listener"
	"github.com/anzhiyu-c/anheyu-site/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-site/internal/app/task"
	"github.com/anzhiyu-c/anheyu-site/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-site/internal/infra/router"
	"github.com/anzhiyu-c/anheyu-site/internal/infra/storage"
	"github.com/anzhiyu-c/anheyu-site/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-site/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-site/pkg/backend"
	"github.com/anzhiyu-c/anheyu-site/pkg/config"
	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	album_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/album"
	sitemap_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/sitemap"
	theme_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/theme"
	version_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/version"
	webhook_handler "github.com/anzhiyu-c/anheyu-site/pkg/handler/webhook"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/revalidate"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/theme"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/utility"
)

// shutdownTimeout 收到退出信号后等待进行中请求的最长时间
const shutdownTimeout = 10 * time.Second

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg          *config.Config
	engine       *gin.Engine
	scheduler    *task.Scheduler
	bootstrapper *bootstrap.Bootstrapper
	eventBus     *event.EventBus
	cacheSvc     utility.CacheService
	settingSvc   setting.SettingService
	sitemapSvc   sitemap.Service
	redisClient  *redis.Client
	// stopCh 关闭后停止限流器等后台清理协程
	stopCh chan struct{}
}

func (a *App) PrintBanner() {
	banner := `

       █████╗ ███╗   ██╗███████╗██╗  ██╗██╗██╗   ██╗██╗   ██╗
      ██╔══██╗████╗  ██║╚══███╔╝██║  ██║██║╚██╗ ██╔╝██║   ██║
      ███████║██╔██╗ ██║  ███╔╝ ███████║██║ ╚████╔╝ ██║   ██║
      ██╔══██║██║╚██╗██║ ███╔╝  ██╔══██║██║  ╚██╔╝  ██║   ██║
      ██║  ██║██║ ╚████║███████╗██║  ██║██║   ██║   ╚██████╔╝
      ╚═╝  ╚═╝╚═╝  ╚═══╝╚══════╝╚═╝  ╚═╝╚═╝   ╚═╝    ╚═════╝

`
	log.Println(banner)
	log.Println("--------------------------------------------------------")
	log.Printf(" Anheyu Site Gateway: %s", version.GetVersionString())
	log.Println("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp(configPath string) (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	if configPath == "" {
		configPath = config.DefaultFilePath
	}
	cfg, err := config.NewConfigFromFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// --- Phase 2: 初始化基础设施 ---
	// Redis 不可用时自动降级到内存缓存
	redisClient := database.NewRedisClient(context.Background(), cfg)
	cacheSvc := utility.NewCacheServiceWithFallback(redisClient)
	log.Printf("缓存类型: %s", utility.GetCacheServiceType(cacheSvc))
	eventBus := event.NewEventBus()

	publisher, err := newPublisher(cfg)
	if err != nil {
		return nil, nil, err
	}

	// --- Phase 3: 初始化业务服务 ---
	backendClient := backend.NewClient(backend.Options{
		BaseURL: cfg.GetString(config.KeyBackendURL),
		Timeout: cfg.GetDuration(config.KeyBackendTimeout),
		RPS:     cfg.GetFloat64(config.KeyBackendRPS),
	})
	settingSvc := setting.NewSettingService(backendClient)
	themeSvc := theme.NewService()
	sitemapSvc := sitemap.NewService(backendClient, settingSvc, cacheSvc, eventBus, sitemap.Options{
		SiteURL:  cfg.GetString(config.KeySiteURL),
		CacheTTL: cfg.GetDuration(config.KeySitemapCacheTTL),
	})
	revalidateSvc := revalidate.NewService(
		cfg.GetString(config.KeyFrontendURL),
		cfg.GetString(config.KeyFrontendRevalidateToken),
	)
	if !revalidateSvc.IsEnabled() {
		log.Println("未配置 Frontend.RevalidateToken，前端缓存清理已关闭。")
	}

	// --- Phase 4: 事件监听与定时任务 ---
	listener.NewSiteListener(eventBus, settingSvc, themeSvc, sitemapSvc, revalidateSvc, publisher, publishObjectName(cfg))
	scheduler := task.NewScheduler(settingSvc, themeSvc, sitemapSvc, cacheSvc)
	if err := scheduler.RegisterJobs(cfg.GetString(config.KeySitemapCron)); err != nil {
		return nil, nil, err
	}

	// --- Phase 5: HTTP 层 ---
	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	if err := middleware.TrustProxies(engine, cfg.GetString(config.KeyServerTrustedProxies)); err != nil {
		return nil, nil, fmt.Errorf("可信代理配置无效: %w", err)
	}

	stopCh := make(chan struct{})
	routerOpts := router.Options{
		RateLimit:    middleware.RateLimit(cfg.GetFloat64(config.KeyRateLimitRPS), cfg.GetInt(config.KeyRateLimitBurst), stopCh),
		WebhookToken: cfg.GetString(config.KeyWebhookToken),
	}
	if cfg.GetBool(config.KeyFrontendProxy) {
		proxy, err := middleware.FrontendProxy(cfg.GetString(config.KeyFrontendURL))
		if err != nil {
			return nil, nil, err
		}
		routerOpts.FrontendProxy = proxy
	}
	router.NewRouter(
		sitemap_handler.NewHandler(sitemapSvc),
		theme_handler.NewHandler(themeSvc),
		album_handler.NewHandler(settingSvc),
		webhook_handler.NewHandler(eventBus),
		version_handler.NewHandler(),
		routerOpts,
	).Setup(engine)

	app := &App{
		cfg:          cfg,
		engine:       engine,
		scheduler:    scheduler,
		bootstrapper: bootstrap.NewBootstrapper(settingSvc, themeSvc, sitemapSvc),
		eventBus:     eventBus,
		cacheSvc:     cacheSvc,
		settingSvc:   settingSvc,
		sitemapSvc:   sitemapSvc,
		redisClient:  redisClient,
		stopCh:       stopCh,
	}

	cleanup := func() {
		if redisClient != nil {
			log.Println("关闭 Redis 连接...")
			redisClient.Close()
		}
	}
	return app, cleanup, nil
}

// newPublisher 按 Sitemap.Publish 创建发布目标，未配置时返回 nil
func newPublisher(cfg *config.Config) (storage.IStorageProvider, error) {
	publisher, err := storage.NewProvider(storage.Options{
		Type:     cfg.GetString(config.KeySitemapPublish),
		LocalDir: cfg.GetString(config.KeySitemapLocalDir),
		S3: storage.S3Options{
			Bucket:    cfg.GetString(config.KeyS3Bucket),
			Region:    cfg.GetString(config.KeyS3Region),
			Endpoint:  cfg.GetString(config.KeyS3Endpoint),
			AccessKey: cfg.GetString(config.KeyS3AccessKey),
			SecretKey: cfg.GetString(config.KeyS3SecretKey),
			PathStyle: cfg.GetBool(config.KeyS3PathStyle),
		},
	})
	if errors.Is(err, constant.ErrPublishNotConfigured) {
		log.Println("未配置站点地图发布目标，仅通过 /sitemap.xml 提供。")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("创建站点地图发布目标失败: %w", err)
	}
	log.Printf("站点地图发布目标: %s", publisher.Name())
	return publisher, nil
}

func publishObjectName(cfg *config.Config) string {
	if strings.EqualFold(cfg.GetString(config.KeySitemapPublish), storage.TypeS3) {
		if key := cfg.GetString(config.KeyS3Key); key != "" {
			return key
		}
	}
	return "sitemap.xml"
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

func (a *App) SitemapService() sitemap.Service {
	return a.sitemapSvc
}

// Bootstrap 执行启动预热，后端不可用时只记录日志
func (a *App) Bootstrap(ctx context.Context) {
	if err := a.bootstrapper.Run(ctx); err != nil {
		log.Printf("启动预热未完成: %v", err)
	}
}

// Run 启动定时任务与 HTTP 服务，收到 SIGINT/SIGTERM 后优雅退出
func (a *App) Run() error {
	a.Bootstrap(context.Background())
	a.scheduler.Start()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8092"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("收到信号 %s，开始关闭服务...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (a *App) Stop() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	if a.eventBus != nil {
		a.eventBus.Shutdown()
	}
}
