package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/theme"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"
	"github.com/anzhiyu-c/anheyu-site/pkg/sitemap"
)

type flakyFetcher struct {
	failures int
	calls    int
	data     siteconfig.Data
}

func (f *flakyFetcher) FetchSiteConfig(ctx context.Context) (siteconfig.Data, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, constant.ErrBackendUnavailable
	}
	return f.data, nil
}

type fakeSitemap struct {
	rendered  int
	renderErr error
}

func (f *fakeSitemap) Generate(ctx context.Context) (*sitemap.URLSet, error) { return nil, nil }
func (f *fakeSitemap) Paths(ctx context.Context) ([]string, error)           { return nil, nil }
func (f *fakeSitemap) Invalidate(ctx context.Context) error                  { return nil }
func (f *fakeSitemap) Robots(ctx context.Context) (string, error)            { return "", nil }
func (f *fakeSitemap) Render(ctx context.Context) ([]byte, error) {
	f.rendered++
	return []byte("<urlset/>"), f.renderErr
}

func TestBootstrapperRun(t *testing.T) {
	tests := []struct {
		name         string
		failures     int
		renderErr    error
		wantErr      bool
		wantCalls    int
		wantRendered int
		wantColor    string
	}{
		{name: "首次成功", failures: 0, wantCalls: 1, wantRendered: 1, wantColor: "#abcdef"},
		{name: "重试后成功", failures: 2, wantCalls: 3, wantRendered: 1, wantColor: "#abcdef"},
		{name: "站点地址未配置不算失败", renderErr: constant.ErrSiteURLMissing, wantCalls: 1, wantRendered: 1, wantColor: "#abcdef"},
		{name: "后端始终不可用", failures: 10, wantErr: true, wantCalls: 3, wantRendered: 0, wantColor: "#163bf2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &flakyFetcher{failures: tt.failures, data: siteconfig.Data{"THEME_COLOR": "#abcdef"}}
			sm := &fakeSitemap{renderErr: tt.renderErr}
			th := theme.NewService()
			b := NewBootstrapper(setting.NewSettingService(fetcher), th, sm)
			b.Attempts = 3
			b.Backoff = time.Millisecond

			err := b.Run(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if fetcher.calls != tt.wantCalls || sm.rendered != tt.wantRendered {
				t.Errorf("calls=%d rendered=%d, want %d/%d", fetcher.calls, sm.rendered, tt.wantCalls, tt.wantRendered)
			}
			if !strings.Contains(th.Stylesheet(), tt.wantColor) {
				t.Errorf("Stylesheet() = %q, want %s", th.Stylesheet(), tt.wantColor)
			}
		})
	}
}

func TestBootstrapperCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewBootstrapper(setting.NewSettingService(&flakyFetcher{failures: 10}), theme.NewService(), &fakeSitemap{})
	b.Backoff = time.Hour
	if err := b.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
