/*
 * @Description: 相册页面配置解析
 * @Author: 安知鱼
 * @Date: 2025-10-22 15:27:03
 * @LastEditTime: 2025-10-24 09:51:36
 * @LastEditors: 安知鱼
 */
package albumconfig

import (
	"strings"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
)

// 布局模式
const (
	LayoutGrid      = "grid"
	LayoutWaterfall = "waterfall"
)

const (
	DefaultGap      = 16
	DefaultPageSize = 24
)

// DefaultColumns 瀑布流列数配置缺失或解析失败时使用的值。
var DefaultColumns = Columns{Large: 4, Medium: 3, Small: 1}

// Columns 瀑布流在不同屏幕宽度下的列数。
type Columns struct {
	Large  int `json:"large"`
	Medium int `json:"medium"`
	Small  int `json:"small"`
}

// Banner 相册页顶部横幅。
type Banner struct {
	Background  string `json:"background"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tip         string `json:"tip"`
}

// Config 相册页面配置。
type Config struct {
	LayoutMode       string  `json:"layoutMode"`
	WaterfallColumns Columns `json:"waterfallColumns"`
	WaterfallGap     int     `json:"waterfallGap"`
	PageSize         int     `json:"pageSize"`
	EnableComment    bool    `json:"enableComment"`
	Banner           Banner  `json:"banner"`
}

// Parse 从站点配置中读取相册页面配置，任何字段缺失或格式错误都回退为默认值。
func Parse(data siteconfig.Data) Config {
	cfg := Config{
		LayoutMode:       LayoutGrid,
		WaterfallColumns: parseColumns(data),
		WaterfallGap:     positiveOr(data.Int(constant.KeyAlbumPageWaterfallGap.String(), DefaultGap), DefaultGap),
		PageSize:         positiveOr(data.Int(constant.KeyAlbumPageSize.String(), DefaultPageSize), DefaultPageSize),
		EnableComment:    data.Bool(constant.KeyAlbumPageEnableComment.String()),
		Banner: Banner{
			Background:  data.String(constant.KeyAlbumPageBannerBackground.String()),
			Title:       data.String(constant.KeyAlbumPageBannerTitle.String()),
			Description: data.String(constant.KeyAlbumPageBannerDescription.String()),
			Tip:         data.String(constant.KeyAlbumPageBannerTip.String()),
		},
	}
	if mode := strings.ToLower(strings.TrimSpace(data.String(constant.KeyAlbumPageLayoutMode.String()))); mode == LayoutWaterfall {
		cfg.LayoutMode = LayoutWaterfall
	}
	return cfg
}

// parseColumns 列数配置可以是对象，也可以是 JSON 字符串；三个值都必须是正整数，否则整体回退。
func parseColumns(data siteconfig.Data) Columns {
	m := data.Map(constant.KeyAlbumPageWaterfallColumnCount.String())
	if m == nil {
		return DefaultColumns
	}
	large, ok1 := siteconfig.Int(m["large"])
	medium, ok2 := siteconfig.Int(m["medium"])
	small, ok3 := siteconfig.Int(m["small"])
	if !ok1 || !ok2 || !ok3 || large <= 0 || medium <= 0 || small <= 0 {
		return DefaultColumns
	}
	return Columns{Large: large, Medium: medium, Small: small}
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
