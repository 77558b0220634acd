package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
)

func writeEnvelope(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": code, "message": "ok", "data": data})
}

func newTestServer(t *testing.T, totalArticles int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/public/site-config", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, map[string]interface{}{
			"SITE_URL": "https://blog.anheyu.com",
			"album":    map[string]interface{}{"page_size": 24},
		})
	})
	mux.HandleFunc("/api/post-categories", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, []map[string]interface{}{{"id": "c1", "name": "前端开发", "count": 25}})
	})
	mux.HandleFunc("/api/post-tags", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, []map[string]interface{}{{"id": "t1", "name": "Go", "count": 3}})
	})
	mux.HandleFunc("/api/public/articles", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
		var list []map[string]interface{}
		for i := (page - 1) * size; i < page*size && i < totalArticles; i++ {
			item := map[string]interface{}{"id": fmt.Sprintf("id%d", i), "updated_at": "2025-10-01T08:00:00+08:00"}
			if i%2 == 0 {
				item["abbrlink"] = fmt.Sprintf("p%d", i)
			}
			list = append(list, item)
		}
		writeEnvelope(w, 200, map[string]interface{}{"list": list, "total": totalArticles, "page": page, "pageSize": size})
	})
	mux.HandleFunc("/api/public/albums", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, map[string]interface{}{"list": []interface{}{}, "total": 77, "pageNum": 1, "pageSize": 1})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient(t *testing.T) {
	server := newTestServer(t, 230)
	client := NewClient(Options{BaseURL: server.URL + "/", Timeout: time.Second})
	ctx := context.Background()

	cfg, err := client.FetchSiteConfig(ctx)
	if err != nil {
		t.Fatalf("FetchSiteConfig() error = %v", err)
	}
	if got := cfg.String("SITE_URL"); got != "https://blog.anheyu.com" {
		t.Errorf("SITE_URL = %q", got)
	}
	if got := cfg.Int("album.page_size", 0); got != 24 {
		t.Errorf("album.page_size = %d, want 24", got)
	}

	categories, err := client.ListCategories(ctx)
	if err != nil || len(categories) != 1 || categories[0].Name != "前端开发" || categories[0].Count != 25 {
		t.Errorf("ListCategories() = %+v, %v", categories, err)
	}
	tags, err := client.ListTags(ctx)
	if err != nil || len(tags) != 1 || tags[0].Name != "Go" {
		t.Errorf("ListTags() = %+v, %v", tags, err)
	}

	articles, total, err := client.ListArticles(ctx)
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if total != 230 || len(articles) != 230 {
		t.Errorf("ListArticles() returned %d articles, total %d; want 230", len(articles), total)
	}
	if articles[0].Slug() != "p0" || articles[1].Slug() != "id1" {
		t.Errorf("Slug() = %q, %q; want p0, id1", articles[0].Slug(), articles[1].Slug())
	}
	if articles[0].UpdatedAt.IsZero() {
		t.Error("UpdatedAt not decoded")
	}

	count, err := client.CountAlbums(ctx)
	if err != nil || count != 77 {
		t.Errorf("CountAlbums() = %d, %v; want 77", count, err)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "HTTP状态码错误",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			wantErr: constant.ErrBackendResponse,
		},
		{
			name: "业务码错误",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, 500, nil)
			},
			wantErr: constant.ErrBackendResponse,
		},
		{
			name: "非JSON响应",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantErr: constant.ErrBackendResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(Options{BaseURL: server.URL}).ListTags(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ListTags() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("后端不可达", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		_, err := NewClient(Options{BaseURL: server.URL}).CountAlbums(context.Background())
		if !errors.Is(err, constant.ErrBackendUnavailable) {
			t.Errorf("CountAlbums() error = %v, want ErrBackendUnavailable", err)
		}
	})
}

func TestClientRateLimit(t *testing.T) {
	server := newTestServer(t, 0)
	client := NewClient(Options{BaseURL: server.URL, RPS: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if _, err := client.ListTags(ctx); err != nil {
		t.Fatalf("first request error = %v", err)
	}
	if _, err := client.ListTags(ctx); !errors.Is(err, constant.ErrBackendUnavailable) {
		t.Errorf("second request error = %v, want throttled", err)
	}
}
