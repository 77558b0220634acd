package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"
)

func TestLocalProviderPut(t *testing.T) {
	dir := t.TempDir()
	p := NewLocalProvider(dir)

	res, err := p.Put(context.Background(), "sitemap.xml", []byte("<urlset/>"), "application/xml")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if res.Location != filepath.Join(dir, "sitemap.xml") || res.Size != 9 {
		t.Errorf("Put() result = %+v", res)
	}

	// 覆盖写入
	if _, err := p.Put(context.Background(), "sitemap.xml", []byte("<urlset></urlset>"), ""); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "sitemap.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<urlset></urlset>" {
		t.Errorf("file content = %q", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only sitemap.xml", len(entries))
	}
}

func TestLocalProviderRejectsEscape(t *testing.T) {
	dir := t.TempDir()
	p := NewLocalProvider(filepath.Join(dir, "public"))

	res, err := p.Put(context.Background(), "../../evil.xml", []byte("x"), "")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if filepath.Dir(res.Location) != filepath.Join(dir, "public") {
		t.Errorf("Put() wrote outside base dir: %s", res.Location)
	}
	if _, err := p.Put(context.Background(), "/", []byte("x"), ""); err == nil {
		t.Error("Put(\"/\") error = nil, want error")
	}
}

func TestLocalProviderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocalProvider(t.TempDir()).Put(ctx, "a.xml", nil, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("Put() error = %v, want context.Canceled", err)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantName string
		wantErr  error
	}{
		{name: "未配置", opts: Options{}, wantErr: constant.ErrPublishNotConfigured},
		{name: "显式关闭", opts: Options{Type: "none"}, wantErr: constant.ErrPublishNotConfigured},
		{name: "本地", opts: Options{Type: " Local ", LocalDir: t.TempDir()}, wantName: TypeLocal},
		{name: "S3缺少存储桶", opts: Options{Type: "s3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.opts)
			if tt.wantName == "" {
				if err == nil {
					t.Fatalf("NewProvider() error = nil, want error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("NewProvider() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestAWSS3ProviderPut(t *testing.T) {
	var (
		mu          sync.Mutex
		gotMethod   string
		gotPath     string
		gotType     string
		gotChecksum string
		gotBody     []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotMethod, gotPath = r.Method, r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotChecksum = r.Header.Get("x-amz-checksum-sha256")
		gotBody = body
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p, err := NewAWSS3Provider(S3Options{
		Bucket:    "site",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "ak",
		SecretKey: "sk",
		Prefix:    "/public/",
	})
	if err != nil {
		t.Fatalf("NewAWSS3Provider() error = %v", err)
	}

	res, err := p.Put(context.Background(), "sitemap.xml", []byte("<urlset/>"), "application/xml")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if res.Location != "public/sitemap.xml" {
		t.Errorf("Location = %q, want public/sitemap.xml", res.Location)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotMethod != http.MethodPut || gotPath != "/site/public/sitemap.xml" {
		t.Errorf("request = %s %s, want PUT /site/public/sitemap.xml", gotMethod, gotPath)
	}
	if gotType != "application/xml" {
		t.Errorf("Content-Type = %q", gotType)
	}
	if gotChecksum == "" {
		t.Error("missing x-amz-checksum-sha256 header")
	}
	if string(gotBody) != "<urlset/>" {
		t.Errorf("body = %q", gotBody)
	}
}

func TestRegionFromEndpoint(t *testing.T) {
	tests := map[string]string{
		"https://s3.us-west-2.amazonaws.com": "us-west-2",
		"http://127.0.0.1:9000":              "us-east-1",
		"":                                   "us-east-1",
	}
	for endpoint, want := range tests {
		if got := regionFromEndpoint(endpoint); got != want {
			t.Errorf("regionFromEndpoint(%q) = %q, want %q", endpoint, got, want)
		}
	}
}
