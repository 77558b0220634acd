/*
 * @Description: 监听站点事件，协调缓存失效、站点地图发布与前端缓存清理
 * @Author: 安知鱼
 * @Date: 2025-07-18 17:30:00
 * @LastEditTime: 2025-10-24 17:02:36
 * @LastEditors: 安知鱼
 */
package listener

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-site/internal/infra/storage"
	"github.com/anzhiyu-c/anheyu-site/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/sitemap"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/theme"
)

// handlerTimeout 单个事件处理的最长时间
const handlerTimeout = 30 * time.Second

// Revalidator 前端缓存清理
type Revalidator interface {
	RevalidateSiteConfig(ctx context.Context) error
	RevalidateSitemap(ctx context.Context) error
	RevalidateArticle(ctx context.Context, slug string) error
	RevalidateAll(ctx context.Context) error
}

// SiteListener 订阅站点事件，作为后端通知之后所有后台处理的总协调器。
type SiteListener struct {
	settingSvc  setting.SettingService
	themeSvc    theme.Service
	sitemapSvc  sitemap.Service
	revalidator Revalidator
	// publisher 为 nil 时不发布站点地图文件
	publisher  storage.IStorageProvider
	objectName string
}

// NewSiteListener 是 SiteListener 的构造函数，创建时即完成订阅。
func NewSiteListener(
	bus *event.EventBus,
	settingSvc setting.SettingService,
	themeSvc theme.Service,
	sitemapSvc sitemap.Service,
	revalidator Revalidator,
	publisher storage.IStorageProvider,
	objectName string,
) *SiteListener {
	l := &SiteListener{
		settingSvc:  settingSvc,
		themeSvc:    themeSvc,
		sitemapSvc:  sitemapSvc,
		revalidator: revalidator,
		publisher:   publisher,
		objectName:  objectName,
	}
	bus.Subscribe(event.SiteConfigUpdated, l.handleSiteConfigUpdated)
	bus.Subscribe(event.ContentUpdated, l.handleContentUpdated)
	bus.Subscribe(event.SitemapRefreshed, l.handleSitemapRefreshed)
	return l
}

func (l *SiteListener) handleSiteConfigUpdated(payload interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	log.Println("[SiteListener] 收到站点配置变更通知，重新加载配置...")
	if err := l.settingSvc.Load(ctx); err != nil {
		log.Printf("[SiteListener] 重新加载站点配置失败，继续使用旧配置: %v", err)
	}
	l.themeSvc.Refresh(l.settingSvc.GetSiteConfig())
	l.rebuildSitemap(ctx)

	if err := l.revalidator.RevalidateSiteConfig(ctx); err != nil {
		log.Printf("[SiteListener] 清理前端站点配置缓存失败: %v", err)
	}
}

func (l *SiteListener) handleContentUpdated(payload interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	var slug string
	if p, ok := payload.(*event.ContentPayload); ok && p != nil {
		slug = p.Slug
	}
	log.Printf("[SiteListener] 收到内容变更通知 (slug=%q)", slug)
	l.rebuildSitemap(ctx)

	var err error
	if slug != "" {
		err = l.revalidator.RevalidateArticle(ctx, slug)
	} else {
		err = l.revalidator.RevalidateAll(ctx)
	}
	if err != nil {
		log.Printf("[SiteListener] 清理前端内容缓存失败: %v", err)
	}
}

// rebuildSitemap 清除缓存并立即重新生成，生成成功后会触发 SitemapRefreshed
func (l *SiteListener) rebuildSitemap(ctx context.Context) {
	if err := l.sitemapSvc.Invalidate(ctx); err != nil {
		log.Printf("[SiteListener] 清除站点地图缓存失败: %v", err)
	}
	if _, err := l.sitemapSvc.Render(ctx); err != nil {
		if errors.Is(err, constant.ErrSiteURLMissing) {
			log.Println("[SiteListener] 未配置站点地址，跳过站点地图预生成")
			return
		}
		log.Printf("[SiteListener] 预生成站点地图失败: %v", err)
	}
}

func (l *SiteListener) handleSitemapRefreshed(payload interface{}) {
	p, ok := payload.(*event.SitemapPayload)
	if !ok || p == nil {
		log.Printf("[SiteListener] 错误：收到的SitemapRefreshed事件负载类型不正确")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if l.publisher != nil {
		res, err := l.publisher.Put(ctx, l.objectName, p.XML, "application/xml; charset=utf-8")
		if err != nil {
			log.Printf("[SiteListener] 发布站点地图到 %s 失败: %v", l.publisher.Name(), err)
		} else {
			log.Printf("[SiteListener] 站点地图已发布到 %s: %s (%d 个URL)", l.publisher.Name(), res.Location, p.URLCount)
		}
	}

	if err := l.revalidator.RevalidateSitemap(ctx); err != nil {
		log.Printf("[SiteListener] 清理前端站点地图缓存失败: %v", err)
	}
}
