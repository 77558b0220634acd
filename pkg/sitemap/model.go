/*
 * @Description: 站点地图数据模型
 * @Author: 安知鱼
 * @Date: 2025-09-21 00:00:00
 * @LastEditTime: 2025-10-22 11:40:27
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"encoding/xml"
	"time"
)

// SitemapNamespace 站点地图协议命名空间
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet 站点地图根元素
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL 站点地图URL条目
type URL struct {
	Location     string  `xml:"loc"`
	LastModified string  `xml:"lastmod,omitempty"`
	ChangeFreq   string  `xml:"changefreq,omitempty"`
	Priority     float32 `xml:"priority,omitempty"`
}

// ChangeFrequency 更新频率枚举
type ChangeFrequency string

const (
	ChangeFreqDaily   ChangeFrequency = "daily"
	ChangeFreqWeekly  ChangeFrequency = "weekly"
	ChangeFreqMonthly ChangeFrequency = "monthly"
	ChangeFreqYearly  ChangeFrequency = "yearly"
)

// Entry 是生成过程中的一条站点地图记录，Path 为规范化后的站内路径。
type Entry struct {
	Path         string
	LastModified time.Time
	ChangeFreq   ChangeFrequency
	Priority     float32
}

// ToURL 拼接站点根地址并转换为 XML 条目。LastModified 为零值时省略 lastmod。
func (e *Entry) ToURL(baseURL string) URL {
	u := URL{
		Location:   baseURL + e.Path,
		ChangeFreq: string(e.ChangeFreq),
		Priority:   e.Priority,
	}
	if !e.LastModified.IsZero() {
		u.LastModified = e.LastModified.Format("2006-01-02T15:04:05-07:00")
	}
	return u
}

// articleFreshness 根据文章距今的更新时间给出更新频率和优先级。
func articleFreshness(updatedAt time.Time, now time.Time) (ChangeFrequency, float32) {
	age := now.Sub(updatedAt)
	switch {
	case age < 24*time.Hour:
		return ChangeFreqDaily, 0.9
	case age < 7*24*time.Hour:
		return ChangeFreqWeekly, 0.8
	case age < 30*24*time.Hour:
		return ChangeFreqMonthly, 0.7
	default:
		return ChangeFreqYearly, 0.6
	}
}

// ArticleEntry 根据文章更新时间生成文章页记录
func ArticleEntry(path string, updatedAt, now time.Time) Entry {
	freq, priority := articleFreshness(updatedAt, now)
	return Entry{Path: path, LastModified: updatedAt, ChangeFreq: freq, Priority: priority}
}
