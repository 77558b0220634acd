/*
 * @Description: 站点配置默认值
 * @Author: 安知鱼
 * @Date: 2025-06-21 17:18:09
 * @LastEditTime: 2025-10-24 10:12:45
 * @LastEditors: 安知鱼
 */
package configdef

import (
	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
)

// Definition 定义了单个配置项的默认值。
type Definition struct {
	Key     constant.SettingKey
	Value   string
	Comment string
}

// AllSettings 是网关会读取的配置项及其默认值，与后端初始化时写入的默认值保持一致。
// 后端不可用或返回的配置缺项时，以这里的值兜底。
var AllSettings = []Definition{
	// --- 站点基础配置 ---
	{Key: constant.KeyAboutLink, Value: "https://github.com/anzhiyu-c/anheyu-app", Comment: "关于链接"},
	{Key: constant.KeyThemeColor, Value: "#163bf2", Comment: "应用主题颜色"},
	{Key: constant.KeyHomeTop, Value: `{"title":"生活明朗","subTitle":"万物可爱。","siteText":"ANHEYU.COM","category":[{"name":"前端","path":"/categories/前端开发/","background":"linear-gradient(to right,#358bff,#15c6ff)","icon":"anzhiyu-icon-dove","isExternal":false},{"name":"大学","path":"/categories/大学生涯","background":"linear-gradient(to right,#f65,#ffbf37)","icon":"anzhiyu-icon-fire","isExternal":false},{"name":"生活","path":"/categories/生活日常","background":"linear-gradient(to right,#18e7ae,#1eebeb)","icon":"anzhiyu-icon-book","isExternal":false}],"banner":{"tips":"新品框架","title":"Theme-AnHeYu","image":"","link":"https://dev.anheyu.com/","isExternal":true}}`, Comment: "首页顶部UI配置 (JSON格式)"},

	// --- 导航与页脚 ---
	{Key: constant.KeyHeaderMenu, Value: `[{"title":"文库","items":[{"title":"全部文章","path":"/archives","icon":"anzhiyu-icon-book","isExternal":false},{"title":"分类列表","path":"/categories","icon":"anzhiyu-icon-shapes","isExternal":false},{"title":"标签列表","path":"/tags","icon":"anzhiyu-icon-tags","isExternal":false}]},{"title":"友链","items":[{"title":"友情链接","path":"/link","icon":"anzhiyu-icon-link","isExternal":false},{"title":"宝藏博主","path":"/travelling","icon":"anzhiyu-icon-cube","isExternal":false}]},{"title":"我的","items":[{"title":"音乐馆","path":"/music","icon":"anzhiyu-icon-music","isExternal":false},{"title":"小空调","path":"/air-conditioner","icon":"anzhiyu-icon-fan","isExternal":false},{"title":"相册集","path":"/album","icon":"anzhiyu-icon-images","isExternal":false}]},{"title":"关于","items":[{"title":"随便逛逛","path":"/random-post","icon":"anzhiyu-icon-shoe-prints1","isExternal":false},{"title":"关于本站","path":"/about","icon":"anzhiyu-icon-paper-plane","isExternal":false},{"title":"我的装备","path":"/equipment","icon":"anzhiyu-icon-dice-d20","isExternal":false}]}]`, Comment: "主菜单配置 (有序数组结构)"},
	{Key: constant.KeyFooterBarLinkList, Value: `[{"link":"/about#post-comment","text":"留言"},{"link":"https://github.com/anzhiyu-c/anheyu-app","text":"框架"},{"link":"https://index.anheyu.com","text":"主页"}]`, Comment: "底部栏链接列表 (JSON格式)"},
	{Key: constant.KeyFooterProjectList, Value: `[{"title":"服务","links":[{"title":"站点地图","link":"https://blog.anheyu.com/atom.xml"},{"title":"十年之约","link":"https://foreverblog.cn/go.html"},{"title":"开往","link":"https://www.travellings.cn/go.html"}]},{"title":"框架","links":[{"title":"文档","link":"https://dev.anheyu.com"},{"title":"源码","link":"https://github.com/anzhiyu-c/anheyu-app"},{"title":"更新日志","link":"/update"}]},{"title":"导航","links":[{"title":"小空调","link":"/air-conditioner"},{"title":"相册集","link":"/album"},{"title":"音乐馆","link":"/music"}]},{"title":"协议","links":[{"title":"隐私协议","link":"/privacy"},{"title":"Cookies","link":"/cookies"},{"title":"版权协议","link":"/copyright"}]}]`, Comment: "页脚链接列表 (JSON格式)"},
	{Key: constant.KeyPostDefaultPageSize, Value: "12", Comment: "文章默认分页大小"},

	// --- 相册页面配置 ---
	{Key: constant.KeyAlbumPageBannerBackground, Value: "", Comment: "相册页面横幅背景图/视频URL"},
	{Key: constant.KeyAlbumPageBannerTitle, Value: "相册", Comment: "相册页面横幅标题"},
	{Key: constant.KeyAlbumPageBannerDescription, Value: "记录生活的美好瞬间", Comment: "相册页面横幅描述"},
	{Key: constant.KeyAlbumPageBannerTip, Value: "分享精彩图片", Comment: "相册页面横幅提示文字"},
	{Key: constant.KeyAlbumPageLayoutMode, Value: "grid", Comment: "相册布局模式 (grid/waterfall)"},
	{Key: constant.KeyAlbumPageWaterfallColumnCount, Value: `{"large":4,"medium":3,"small":1}`, Comment: "瀑布流列数配置 (JSON格式)"},
	{Key: constant.KeyAlbumPageWaterfallGap, Value: "16", Comment: "瀑布流间距 (像素)"},
	{Key: constant.KeyAlbumPageSize, Value: "24", Comment: "相册每页显示数量"},
	{Key: constant.KeyAlbumPageEnableComment, Value: "false", Comment: "是否启用相册页评论 (true/false)"},
}

// Value 返回配置项的默认值。
func Value(key constant.SettingKey) (string, bool) {
	for _, def := range AllSettings {
		if def.Key == key {
			return def.Value, true
		}
	}
	return "", false
}

// WithDefaults 返回 data 的浅拷贝，其中缺失的配置项以扁平键的形式补上默认值。
// data 中已有的值（无论嵌套还是扁平）保持不变。
func WithDefaults(data siteconfig.Data) siteconfig.Data {
	out := make(siteconfig.Data, len(data)+len(AllSettings))
	for k, v := range data {
		out[k] = v
	}
	for _, def := range AllSettings {
		if _, ok := siteconfig.Lookup(data, def.Key.String()); ok {
			continue
		}
		out[def.Key.String()] = def.Value
	}
	return out
}
