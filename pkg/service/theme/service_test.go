package theme

import (
	"errors"
	"testing"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
)

func TestStylesheet(t *testing.T) {
	svc := NewService()
	want := ":root{--anzhiyu-main:#163bf2;--anzhiyu-theme:#163bf2;--anzhiyu-theme-op:#163bf223;}"
	if got := svc.Stylesheet(); got != want {
		t.Errorf("Stylesheet() = %q, want %q", got, want)
	}

	svc.Refresh(siteconfig.Data{"THEME_COLOR": "rgb(255, 114, 66)"})
	want = ":root{--anzhiyu-main:rgb(255, 114, 66);--anzhiyu-theme:rgb(255, 114, 66);}"
	if got := svc.Stylesheet(); got != want {
		t.Errorf("Stylesheet() after Refresh = %q, want %q", got, want)
	}
}

func TestPreviewRestoresState(t *testing.T) {
	svc := NewService()
	before := svc.Stylesheet()

	got, err := svc.Preview(map[string]string{
		"--anzhiyu-theme":    "#ff7242",
		"--anzhiyu-theme-op": "",
		"--anzhiyu-new":      " 4px ",
	})
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	want := ":root{--anzhiyu-main:#163bf2;--anzhiyu-new:4px;--anzhiyu-theme:#ff7242;}"
	if got != want {
		t.Errorf("Preview() = %q, want %q", got, want)
	}
	if after := svc.Stylesheet(); after != before {
		t.Errorf("Stylesheet() after Preview = %q, want %q", after, before)
	}
}

func TestPreviewRejectsInvalidNames(t *testing.T) {
	svc := NewService()
	for _, overrides := range []map[string]string{
		{"color": "red"},
		{"--x;}body{": "red"},
		{"--x": "red;}body{display:none"},
	} {
		if _, err := svc.Preview(overrides); !errors.Is(err, constant.ErrInvalidCSSVariable) {
			t.Errorf("Preview(%v) error = %v, want ErrInvalidCSSVariable", overrides, err)
		}
	}
}
