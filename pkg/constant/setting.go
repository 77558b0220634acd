// pkg/constant/setting.go
/*
 * @Description: 站点配置键（与后端 /api/public/site-config 保持一致）
 * @Author: 安知鱼
 * @Date: 2025-06-21 17:18:09
 * @LastEditTime: 2025-10-22 09:48:31
 * @LastEditors: 安知鱼
 */
package constant

// SettingKey 为站点配置中会被读取的键定义了类型安全的常量。
type SettingKey string

// ToString 方便地将 SettingKey 转换为 string 类型。
func (k SettingKey) String() string {
	return string(k)
}

const (
	// --- 站点基础配置 ---
	KeySiteURL    SettingKey = "SITE_URL"
	KeyAboutLink  SettingKey = "ABOUT_LINK"
	KeyThemeColor SettingKey = "THEME_COLOR"
	KeyHomeTop    SettingKey = "HOME_TOP"

	// --- 导航与页脚 ---
	KeyHeaderMenu          SettingKey = "header.menu"
	KeyFooterBarLinkList   SettingKey = "footer.bar.linkList"
	KeyFooterProjectList   SettingKey = "footer.project.list"
	KeyPostDefaultPageSize SettingKey = "post.default.page_size"

	// --- 相册页面配置 ---
	KeyAlbumPageBannerBackground     SettingKey = "album.banner.background"
	KeyAlbumPageBannerTitle          SettingKey = "album.banner.title"
	KeyAlbumPageBannerDescription    SettingKey = "album.banner.description"
	KeyAlbumPageBannerTip            SettingKey = "album.banner.tip"
	KeyAlbumPageLayoutMode           SettingKey = "album.layout_mode"
	KeyAlbumPageWaterfallColumnCount SettingKey = "album.waterfall.column_count"
	KeyAlbumPageWaterfallGap         SettingKey = "album.waterfall.gap"
	KeyAlbumPageSize                 SettingKey = "album.page_size"
	KeyAlbumPageEnableComment        SettingKey = "album.enable_comment"
)
