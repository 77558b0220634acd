package listener

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/anzhiyu-c/anheyu-site/internal/infra/storage"
	"github.com/anzhiyu-c/anheyu-site/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/theme"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
	"github.com/anzhiyu-c/anheyu-site/pkg/sitemap"
)

type fakeFetcher struct {
	data siteconfig.Data
	err  error
}

func (f *fakeFetcher) FetchSiteConfig(ctx context.Context) (siteconfig.Data, error) {
	return f.data, f.err
}

type fakeSitemap struct {
	mu          sync.Mutex
	invalidated int
	rendered    int
	renderErr   error
}

func (f *fakeSitemap) Generate(ctx context.Context) (*sitemap.URLSet, error) { return nil, nil }
func (f *fakeSitemap) Paths(ctx context.Context) ([]string, error)           { return nil, nil }
func (f *fakeSitemap) Robots(ctx context.Context) (string, error)            { return "", nil }

func (f *fakeSitemap) Render(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rendered++
	return nil, f.renderErr
}

func (f *fakeSitemap) Invalidate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	return nil
}

type fakeRevalidator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeRevalidator) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeRevalidator) RevalidateSiteConfig(ctx context.Context) error { return f.record("config") }
func (f *fakeRevalidator) RevalidateSitemap(ctx context.Context) error    { return f.record("sitemap") }
func (f *fakeRevalidator) RevalidateAll(ctx context.Context) error        { return f.record("all") }
func (f *fakeRevalidator) RevalidateArticle(ctx context.Context, slug string) error {
	return f.record("article:" + slug)
}

func newTestListener(t *testing.T, fetcher *fakeFetcher, publisher storage.IStorageProvider) (*SiteListener, *fakeSitemap, *fakeRevalidator, theme.Service) {
	t.Helper()
	bus := event.NewEventBus()
	t.Cleanup(bus.Shutdown)
	sm := &fakeSitemap{}
	rv := &fakeRevalidator{}
	th := theme.NewService()
	l := NewSiteListener(bus, setting.NewSettingService(fetcher), th, sm, rv, publisher, "sitemap.xml")
	return l, sm, rv, th
}

func TestHandleSiteConfigUpdated(t *testing.T) {
	fetcher := &fakeFetcher{data: siteconfig.Data{"THEME_COLOR": "#ff0000"}}
	l, sm, rv, th := newTestListener(t, fetcher, nil)

	l.handleSiteConfigUpdated(nil)

	if got := l.settingSvc.Get("THEME_COLOR"); got != "#ff0000" {
		t.Errorf("THEME_COLOR = %q, want reloaded value", got)
	}
	if !strings.Contains(th.Stylesheet(), "#ff0000") {
		t.Errorf("Stylesheet() = %q, want refreshed theme color", th.Stylesheet())
	}
	if sm.invalidated != 1 || sm.rendered != 1 {
		t.Errorf("sitemap invalidated=%d rendered=%d, want 1/1", sm.invalidated, sm.rendered)
	}
	if strings.Join(rv.calls, ",") != "config" {
		t.Errorf("revalidate calls = %v, want [config]", rv.calls)
	}
}

func TestHandleSiteConfigUpdatedFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: constant.ErrBackendUnavailable}
	l, sm, rv, _ := newTestListener(t, fetcher, nil)
	sm.renderErr = constant.ErrSiteURLMissing

	l.handleSiteConfigUpdated(nil)

	if got := l.settingSvc.Get("THEME_COLOR"); got != "#163bf2" {
		t.Errorf("THEME_COLOR = %q, want default after failed load", got)
	}
	if len(rv.calls) != 1 {
		t.Errorf("revalidate calls = %v, want one call even when rendering fails", rv.calls)
	}
}

func TestHandleContentUpdated(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		want    string
	}{
		{name: "单篇文章", payload: &event.ContentPayload{Slug: "hello"}, want: "article:hello"},
		{name: "批量变更", payload: &event.ContentPayload{}, want: "all"},
		{name: "无载荷", payload: nil, want: "all"},
		{name: "错误类型", payload: "hello", want: "all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, sm, rv, _ := newTestListener(t, &fakeFetcher{}, nil)
			l.handleContentUpdated(tt.payload)
			if sm.invalidated != 1 {
				t.Errorf("invalidated = %d, want 1", sm.invalidated)
			}
			if strings.Join(rv.calls, ",") != tt.want {
				t.Errorf("revalidate calls = %v, want [%s]", rv.calls, tt.want)
			}
		})
	}
}

func TestHandleSitemapRefreshedPublishes(t *testing.T) {
	dir := t.TempDir()
	l, _, rv, _ := newTestListener(t, &fakeFetcher{}, storage.NewLocalProvider(dir))

	xml := []byte(`<?xml version="1.0" encoding="UTF-8"?><urlset/>`)
	l.handleSitemapRefreshed(&event.SitemapPayload{URLCount: 0, XML: xml})

	got, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != string(xml) {
		t.Errorf("published content = %q", got)
	}
	if strings.Join(rv.calls, ",") != "sitemap" {
		t.Errorf("revalidate calls = %v, want [sitemap]", rv.calls)
	}
}

type failingProvider struct{}

func (failingProvider) Name() string { return "broken" }
func (failingProvider) Put(ctx context.Context, name string, data []byte, contentType string) (*storage.PublishResult, error) {
	return nil, errors.New("disk full")
}

func TestHandleSitemapRefreshedPublishFailure(t *testing.T) {
	l, _, rv, _ := newTestListener(t, &fakeFetcher{}, failingProvider{})

	l.handleSitemapRefreshed(&event.SitemapPayload{XML: []byte("x")})
	if len(rv.calls) != 1 {
		t.Errorf("revalidate calls = %v, want revalidation despite publish failure", rv.calls)
	}

	rv.calls = nil
	l.handleSitemapRefreshed("not a payload")
	if len(rv.calls) != 0 {
		t.Errorf("revalidate calls = %v, want none for bad payload", rv.calls)
	}
}
