/*
 * @Description: 站点地图服务
 * @Author: 安知鱼
 * @Date: 2025-09-21 00:00:00
 * @LastEditTime: 2025-10-24 17:26:40
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-site/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-site/pkg/albumconfig"
	"github.com/anzhiyu-c/anheyu-site/pkg/backend"
	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/utility"
	"github.com/anzhiyu-c/anheyu-site/pkg/sitemap"
)

const (
	// CacheKeyPrefix 站点地图相关缓存键的前缀
	CacheKeyPrefix = "sitemap:"
	CacheKeyXML    = CacheKeyPrefix + "xml"
	CacheKeyPaths  = CacheKeyPrefix + "paths"

	// XMLHeader 站点地图 XML 声明
	XMLHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

	defaultPostPageSize = 12
)

// Source 生成站点地图所需的内容来源，通常是后端客户端
type Source interface {
	ListCategories(ctx context.Context) ([]backend.Taxonomy, error)
	ListTags(ctx context.Context) ([]backend.Taxonomy, error)
	ListArticles(ctx context.Context) ([]backend.ArticleRef, int, error)
	CountAlbums(ctx context.Context) (int, error)
}

// Service 站点地图服务接口
type Service interface {
	// Generate 从站点配置和后端内容生成站点地图
	Generate(ctx context.Context) (*sitemap.URLSet, error)
	// Paths 返回站点地图中的全部站内路径（带缓存）
	Paths(ctx context.Context) ([]string, error)
	// Render 返回带 XML 声明的站点地图（带缓存）
	Render(ctx context.Context) ([]byte, error)
	// Invalidate 清除站点地图缓存，下次请求时重新生成
	Invalidate(ctx context.Context) error
	// Robots 生成 robots.txt
	Robots(ctx context.Context) (string, error)
}

// Options 站点地图服务配置
type Options struct {
	// SiteURL 站点配置中没有 SITE_URL 时使用的站点地址
	SiteURL  string
	CacheTTL time.Duration
	// Now 当前时间，测试时可替换
	Now func() time.Time
}

// staticPage 前台固定存在的页面
type staticPage struct {
	path     string
	freq     sitemap.ChangeFrequency
	priority float32
}

var staticPages = []staticPage{
	{"/archives", sitemap.ChangeFreqDaily, 0.7},
	{"/categories", sitemap.ChangeFreqWeekly, 0.6},
	{"/tags", sitemap.ChangeFreqWeekly, 0.6},
	{"/link", sitemap.ChangeFreqWeekly, 0.6},
	{"/album", sitemap.ChangeFreqWeekly, 0.6},
	{"/music", sitemap.ChangeFreqMonthly, 0.5},
	{"/about", sitemap.ChangeFreqMonthly, 0.5},
}

// service 站点地图服务实现
type service struct {
	source     Source
	settingSvc setting.SettingService
	cache      utility.CacheService
	bus        *event.EventBus
	locker     *utility.KeyLocker
	opts       Options
}

// NewService 创建站点地图服务，bus 为 nil 时不发布生成事件
func NewService(source Source, settingSvc setting.SettingService, cache utility.CacheService, bus *event.EventBus, opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	return &service{
		source:     source,
		settingSvc: settingSvc,
		cache:      cache,
		bus:        bus,
		locker:     utility.NewKeyLocker(),
		opts:       opts,
	}
}

// baseURL 站点根地址，不以斜杠结尾
func (s *service) baseURL() (string, error) {
	baseURL := strings.TrimSpace(s.settingSvc.Get(constant.KeySiteURL.String()))
	if baseURL == "" {
		baseURL = strings.TrimSpace(s.opts.SiteURL)
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return "", constant.ErrSiteURLMissing
	}
	return baseURL, nil
}

func (s *service) Generate(ctx context.Context) (*sitemap.URLSet, error) {
	baseURL, err := s.baseURL()
	if err != nil {
		return nil, err
	}
	b := s.build(ctx, baseURL)
	return b.URLSet(baseURL), nil
}

// build 依次汇总各数据源，任何一个数据源失败都只记录日志并跳过
func (s *service) build(ctx context.Context, baseURL string) *sitemap.Builder {
	now := s.opts.Now()
	cfg := s.settingSvc.GetSiteConfig()
	postPageSize := cfg.Int(constant.KeyPostDefaultPageSize.String(), defaultPostPageSize)

	b := sitemap.NewBuilder()
	b.Add(sitemap.Entry{Path: "/", LastModified: now, ChangeFreq: sitemap.ChangeFreqDaily, Priority: 1.0})
	for _, page := range staticPages {
		b.Add(sitemap.Entry{Path: page.path, ChangeFreq: page.freq, Priority: page.priority})
	}

	var siteHost string
	if u, err := url.Parse(baseURL); err == nil {
		siteHost = u.Hostname()
	}
	configPaths := sitemap.CollectInternalPaths(cfg, sitemap.WithSiteHost(siteHost))
	b.AddPaths(configPaths, sitemap.ChangeFreqWeekly, 0.5)

	if err := s.addArticles(ctx, b, now, postPageSize); err != nil {
		log.Printf("[Sitemap] 添加文章到站点地图时出错: %v", err)
	}
	if err := s.addTaxonomies(ctx, b, "/categories/", s.source.ListCategories, postPageSize); err != nil {
		log.Printf("[Sitemap] 添加分类到站点地图时出错: %v", err)
	}
	if err := s.addTaxonomies(ctx, b, "/tags/", s.source.ListTags, postPageSize); err != nil {
		log.Printf("[Sitemap] 添加标签到站点地图时出错: %v", err)
	}
	if err := s.addAlbumPages(ctx, b, albumconfig.Parse(cfg).PageSize); err != nil {
		log.Printf("[Sitemap] 添加相册分页到站点地图时出错: %v", err)
	}

	log.Printf("[Sitemap] 站点地图生成完成，共 %d 条记录", b.Len())
	return b
}

// addArticles 添加文章页以及首页分页
func (s *service) addArticles(ctx context.Context, b *sitemap.Builder, now time.Time, pageSize int) error {
	articles, total, err := s.source.ListArticles(ctx)
	if err != nil {
		return fmt.Errorf("获取文章列表失败: %w", err)
	}
	for _, article := range articles {
		if article.Slug() == "" {
			continue
		}
		b.Add(sitemap.ArticleEntry("/posts/"+url.PathEscape(article.Slug()), article.UpdatedAt, now))
	}
	b.AddPaths(sitemap.BuildPaginationPaths("/", total, pageSize), sitemap.ChangeFreqDaily, 0.5)
	return nil
}

// addTaxonomies 添加分类或标签页及其分页
func (s *service) addTaxonomies(
	ctx context.Context,
	b *sitemap.Builder,
	prefix string,
	list func(context.Context) ([]backend.Taxonomy, error),
	pageSize int,
) error {
	items, err := list(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		base := prefix + url.PathEscape(name)
		if !b.Add(sitemap.Entry{Path: base, ChangeFreq: sitemap.ChangeFreqWeekly, Priority: 0.6}) {
			continue
		}
		b.AddPaths(sitemap.BuildPaginationPaths(base, item.Count, pageSize), sitemap.ChangeFreqWeekly, 0.4)
	}
	return nil
}

// addAlbumPages 添加相册分页
func (s *service) addAlbumPages(ctx context.Context, b *sitemap.Builder, pageSize int) error {
	total, err := s.source.CountAlbums(ctx)
	if err != nil {
		return err
	}
	b.AddPaths(sitemap.BuildPaginationPaths("/album", total, pageSize), sitemap.ChangeFreqWeekly, 0.4)
	return nil
}

func (s *service) Render(ctx context.Context) ([]byte, error) {
	if cached, err := s.cache.Get(ctx, CacheKeyXML); err == nil && cached != "" {
		return []byte(cached), nil
	}

	// 同一时间只生成一次，其余请求等待后直接读缓存
	s.locker.Lock(CacheKeyXML)
	defer s.locker.Unlock(CacheKeyXML)
	if cached, err := s.cache.Get(ctx, CacheKeyXML); err == nil && cached != "" {
		return []byte(cached), nil
	}

	baseURL, err := s.baseURL()
	if err != nil {
		return nil, err
	}
	b := s.build(ctx, baseURL)
	body, err := xml.MarshalIndent(b.URLSet(baseURL), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("生成XML失败: %w", err)
	}
	out := append([]byte(XMLHeader), body...)

	if err := s.cache.Set(ctx, CacheKeyXML, out, s.opts.CacheTTL); err != nil {
		log.Printf("[Sitemap] 写入缓存失败: %v", err)
	}
	s.storePaths(ctx, b.Paths())
	if s.bus != nil {
		s.bus.Publish(event.SitemapRefreshed, &event.SitemapPayload{URLCount: b.Len(), XML: out})
	}
	return out, nil
}

func (s *service) Paths(ctx context.Context) ([]string, error) {
	if paths, ok := s.cachedPaths(ctx); ok {
		return paths, nil
	}
	if _, err := s.Render(ctx); err != nil {
		return nil, err
	}
	if paths, ok := s.cachedPaths(ctx); ok {
		return paths, nil
	}

	// XML 仍在缓存而路径缓存丢失（写入失败或被淘汰），Render 不会重写路径，直接重新生成
	baseURL, err := s.baseURL()
	if err != nil {
		return nil, err
	}
	paths := s.build(ctx, baseURL).Paths()
	s.storePaths(ctx, paths)
	return paths, nil
}

func (s *service) cachedPaths(ctx context.Context) ([]string, bool) {
	cached, err := s.cache.Get(ctx, CacheKeyPaths)
	if err != nil || cached == "" {
		return nil, false
	}
	var paths []string
	if err := json.Unmarshal([]byte(cached), &paths); err != nil {
		log.Printf("[Sitemap] 路径缓存已损坏: %v", err)
		return nil, false
	}
	return paths, true
}

func (s *service) storePaths(ctx context.Context, paths []string) {
	data, err := json.Marshal(paths)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, CacheKeyPaths, data, s.opts.CacheTTL); err != nil {
		log.Printf("[Sitemap] 写入路径缓存失败: %v", err)
	}
}

func (s *service) Invalidate(ctx context.Context) error {
	keys, err := s.cache.Scan(ctx, CacheKeyPrefix+"*")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	log.Printf("[Sitemap] 清除 %d 个站点地图缓存", len(keys))
	return s.cache.Delete(ctx, keys...)
}

func (s *service) Robots(ctx context.Context) (string, error) {
	var sb strings.Builder
	sb.WriteString("User-agent: *\nAllow: /\n\n# 禁止访问管理后台与接口\n")
	for _, prefix := range sitemap.ExcludedPrefixes {
		sb.WriteString("Disallow: " + prefix + "\n")
	}
	sb.WriteString("Disallow: /api/\n")

	// 未配置站点地址时不输出 Sitemap 行
	if baseURL, err := s.baseURL(); err == nil {
		sb.WriteString("\n# 站点地图\nSitemap: " + baseURL + "/sitemap.xml\n")
	}
	sb.WriteString("\n# 爬取延迟（可选）\nCrawl-delay: 1\n")
	return sb.String(), nil
}
