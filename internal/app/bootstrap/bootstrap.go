/*
 * @Description: 启动时的预热流程：拉取站点配置、刷新主题、预生成站点地图
 * @Author: 安知鱼
 * @Date: 2025-06-20 11:11:23
 * @LastEditTime: 2025-10-24 19:12:47
 * @LastEditors: 安知鱼
 */
package bootstrap

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/theme"
)

// Bootstrapper 负责网关启动时的一次性预热
type Bootstrapper struct {
	settingSvc setting.SettingService
	themeSvc   theme.Service
	sitemapSvc sitemap.Service

	// Attempts 拉取站点配置的最大尝试次数
	Attempts int
	// Backoff 第一次重试前的等待时间，之后每次翻倍
	Backoff time.Duration
}

func NewBootstrapper(settingSvc setting.SettingService, themeSvc theme.Service, sitemapSvc sitemap.Service) *Bootstrapper {
	return &Bootstrapper{
		settingSvc: settingSvc,
		themeSvc:   themeSvc,
		sitemapSvc: sitemapSvc,
		Attempts:   5,
		Backoff:    time.Second,
	}
}

// Run 执行预热。后端在重试后仍不可用时返回错误，但主题已用默认配置刷新，网关仍可启动。
func (b *Bootstrapper) Run(ctx context.Context) error {
	log.Println("--- 开始执行启动预热 ---")
	err := b.loadSettings(ctx)
	b.themeSvc.Refresh(b.settingSvc.GetSiteConfig())

	if err == nil {
		b.warmSitemap(ctx)
	}
	log.Println("--- 启动预热完成 ---")
	return err
}

// loadSettings 后端可能晚于网关启动，按指数退避重试
func (b *Bootstrapper) loadSettings(ctx context.Context) error {
	attempts := b.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := b.Backoff

	var err error
	for i := 1; i <= attempts; i++ {
		if err = b.settingSvc.Load(ctx); err == nil {
			return nil
		}
		log.Printf("[Bootstrap] 第 %d/%d 次拉取站点配置失败: %v", i, attempts, err)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	log.Println("[Bootstrap] ⚠️ 后端不可用，暂时使用内置默认配置，定时任务会继续尝试。")
	return err
}

func (b *Bootstrapper) warmSitemap(ctx context.Context) {
	body, err := b.sitemapSvc.Render(ctx)
	switch {
	case errors.Is(err, constant.ErrSiteURLMissing):
		log.Println("[Bootstrap] 未配置站点地址（Site.URL 或站点配置 SITE_URL），跳过站点地图预生成。")
	case err != nil:
		log.Printf("[Bootstrap] 预生成站点地图失败: %v", err)
	default:
		log.Printf("[Bootstrap] 站点地图预生成完成，大小 %d 字节。", len(body))
	}
}
