package configdef

import (
	"testing"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
)

func TestWithDefaults(t *testing.T) {
	data := siteconfig.Data{
		"album":       map[string]interface{}{"layout_mode": "waterfall"},
		"THEME_COLOR": "#ff7242",
	}
	got := WithDefaults(data)

	if v := got.String(constant.KeyAlbumPageLayoutMode.String()); v != "waterfall" {
		t.Errorf("layout_mode = %q, want existing value waterfall", v)
	}
	if v := got.String(constant.KeyThemeColor.String()); v != "#ff7242" {
		t.Errorf("THEME_COLOR = %q, want existing value", v)
	}
	if v := got.Int(constant.KeyAlbumPageSize.String(), 0); v != 24 {
		t.Errorf("album.page_size = %d, want default 24", v)
	}
	if v := got.Int(constant.KeyPostDefaultPageSize.String(), 0); v != 12 {
		t.Errorf("post.default.page_size = %d, want default 12", v)
	}
	if _, ok := got.Get(constant.KeySiteURL.String()); ok {
		t.Error("SITE_URL should not have a default")
	}
	if _, ok := data["album.page_size"]; ok {
		t.Error("WithDefaults modified its input")
	}
}

func TestValue(t *testing.T) {
	if v, ok := Value(constant.KeyThemeColor); !ok || v != "#163bf2" {
		t.Errorf("Value(THEME_COLOR) = (%q, %v), want (#163bf2, true)", v, ok)
	}
	if _, ok := Value(constant.SettingKey("nope")); ok {
		t.Error("Value(nope) ok = true, want false")
	}
}
