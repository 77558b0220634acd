package sitemap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
	"github.com/anzhiyu-c/anheyu-site/pkg/response"
	sitemapmodel "github.com/anzhiyu-c/anheyu-site/pkg/sitemap"

	"github.com/gin-gonic/gin"
)

type fakeService struct {
	xml   []byte
	paths []string
	err   error
}

func (f *fakeService) Generate(ctx context.Context) (*sitemapmodel.URLSet, error) { return nil, f.err }
func (f *fakeService) Render(ctx context.Context) ([]byte, error)                 { return f.xml, f.err }
func (f *fakeService) Paths(ctx context.Context) ([]string, error)                { return f.paths, f.err }
func (f *fakeService) Invalidate(ctx context.Context) error                       { return nil }
func (f *fakeService) Robots(ctx context.Context) (string, error) {
	return "User-agent: *\nDisallow: /admin\n", nil
}

func newRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/sitemap.xml", h.GetSitemap)
	r.GET("/robots.txt", h.GetRobots)
	r.GET("/api/public/sitemap/paths", h.GetPaths)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetSitemap(t *testing.T) {
	tests := []struct {
		name     string
		svc      *fakeService
		wantCode int
	}{
		{name: "成功", svc: &fakeService{xml: []byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<urlset/>")}, wantCode: http.StatusOK},
		{name: "站点地址未配置", svc: &fakeService{err: constant.ErrSiteURLMissing}, wantCode: http.StatusServiceUnavailable},
		{name: "其他错误", svc: &fakeService{err: errors.New("boom")}, wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newRouter(tt.svc), "/sitemap.xml")
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
				t.Errorf("Content-Type = %q", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
				t.Errorf("Cache-Control = %q", cc)
			}
			if w.Header().Get("Last-Modified") == "" {
				t.Error("missing Last-Modified")
			}
			if w.Body.String() != string(tt.svc.xml) {
				t.Errorf("body = %q", w.Body.String())
			}
		})
	}
}

func TestGetRobots(t *testing.T) {
	w := get(newRouter(&fakeService{}), "/robots.txt")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Disallow: /admin") {
		t.Fatalf("GET /robots.txt = %d %q", w.Code, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestGetPaths(t *testing.T) {
	w := get(newRouter(&fakeService{paths: []string{"/", "/about"}}), "/api/public/sitemap/paths")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Code int `json:"code"`
		Data struct {
			Paths []string `json:"paths"`
			Total int      `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != 200 || body.Data.Total != 2 || body.Data.Paths[1] != "/about" {
		t.Errorf("body = %+v", body)
	}

	w = get(newRouter(&fakeService{err: constant.ErrBackendUnavailable}), "/api/public/sitemap/paths")
	var fail response.Response
	json.Unmarshal(w.Body.Bytes(), &fail)
	if w.Code != http.StatusBadGateway || fail.Code != http.StatusBadGateway {
		t.Errorf("backend failure = %d/%d, want 502", w.Code, fail.Code)
	}
}

func TestGetSitemapNotModified(t *testing.T) {
	r := newRouter(&fakeService{xml: []byte("<urlset/>")})
	first := get(r, "/sitemap.xml")
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified || w.Body.Len() != 0 {
		t.Errorf("conditional GET = %d with %d bytes, want 304 and empty body", w.Code, w.Body.Len())
	}
}
