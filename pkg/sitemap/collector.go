/*
 * @Description: 从站点配置中收集站内可导航路径
 * @Author: 安知鱼
 * @Date: 2025-10-21 10:05:47
 * @LastEditTime: 2025-10-24 15:21:09
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"net/url"
	"strings"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
)

// 菜单项、链接项上可能承载路径的字段名，按优先级排列。
var linkFields = []string{"path", "link", "url", "href"}

// 标记外链的字段名。
var externalFields = []string{"isExternal", "is_external", "external"}

type collectOptions struct {
	siteHost string
}

// CollectOption 调整收集行为。
type CollectOption func(*collectOptions)

// WithSiteHost 指定站点自身的域名，指向该域名的绝对地址视为站内链接。
func WithSiteHost(host string) CollectOption {
	return func(o *collectOptions) {
		o.siteHost = strings.ToLower(strings.TrimSpace(host))
	}
}

// pathSet 按首次出现顺序保存去重后的路径。
type pathSet struct {
	seen  map[string]struct{}
	paths []string
}

func newPathSet() *pathSet {
	return &pathSet{seen: make(map[string]struct{})}
}

func (s *pathSet) add(path string) bool {
	if _, ok := s.seen[path]; ok {
		return false
	}
	s.seen[path] = struct{}{}
	s.paths = append(s.paths, path)
	return true
}

type collector struct {
	opts collectOptions
	set  *pathSet
}

// CollectInternalPaths 遍历站点配置中已知的导航区域（关于链接、首页顶部横幅与分类、
// 顶部菜单、页脚链接），返回去重后的站内路径。
// 配置缺失或形态不对时直接跳过，不会返回错误。
func CollectInternalPaths(cfg siteconfig.Data, opts ...CollectOption) []string {
	c := &collector{set: newPathSet()}
	for _, opt := range opts {
		opt(&c.opts)
	}
	if cfg == nil {
		return []string{}
	}

	c.addLink(cfg.String(constant.KeyAboutLink.String()), false)

	c.visitItem(cfg.Map(constant.KeyHomeTop.String() + ".banner"))
	c.visitItems(cfg.List(constant.KeyHomeTop.String() + ".category"))

	for _, entry := range cfg.List(constant.KeyHeaderMenu.String()) {
		c.visitMenuEntry(siteconfig.Map(entry))
	}

	c.visitItems(cfg.List(constant.KeyFooterBarLinkList.String()))
	for _, group := range cfg.List(constant.KeyFooterProjectList.String()) {
		g := siteconfig.Map(group)
		if g == nil {
			continue
		}
		c.visitItems(siteconfig.List(g["links"]))
	}

	if c.set.paths == nil {
		return []string{}
	}
	return c.set.paths
}

// visitMenuEntry 处理顶部菜单的一项：带 items 的是下拉分组，否则按直达链接处理。
func (c *collector) visitMenuEntry(entry map[string]interface{}) {
	if entry == nil {
		return
	}
	items := siteconfig.List(entry["items"])
	if items != nil || siteconfig.String(entry["type"]) == "dropdown" {
		c.visitItems(items)
		return
	}
	c.visitItem(entry)
}

func (c *collector) visitItems(items []interface{}) {
	for _, item := range items {
		c.visitItem(siteconfig.Map(item))
	}
}

func (c *collector) visitItem(item map[string]interface{}) {
	if item == nil {
		return
	}
	external := false
	for _, field := range externalFields {
		if siteconfig.Bool(item[field]) {
			external = true
			break
		}
	}
	for _, field := range linkFields {
		if link := siteconfig.String(item[field]); strings.TrimSpace(link) != "" {
			c.addLink(link, external)
			return
		}
	}
}

func (c *collector) addLink(link string, external bool) {
	if external || c.isExternalURL(link) {
		return
	}
	if path, ok := NormalizeCandidatePath(link); ok {
		c.set.add(path)
	}
}

// isExternalURL 判断是否为指向其他站点的 http(s) 绝对地址。
func (c *collector) isExternalURL(link string) bool {
	trimmed := strings.TrimSpace(link)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") && !strings.HasPrefix(lower, "//") {
		return false
	}
	if c.opts.siteHost == "" {
		return true
	}
	if strings.HasPrefix(trimmed, "//") {
		trimmed = "https:" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return true
	}
	return strings.ToLower(u.Hostname()) != c.opts.siteHost
}
