package utility

import (
	"context"
	"sort"
	"testing"
	"time"
)

func TestMemoryCacheService(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryCacheService()
	defer svc.(*memoryCacheService).Stop()

	if err := svc.Set(ctx, "sitemap:xml", []byte("<urlset/>"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := svc.Get(ctx, "sitemap:xml"); got != "<urlset/>" {
		t.Errorf("Get() = %q, want <urlset/>", got)
	}

	_ = svc.Set(ctx, "short", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if got, _ := svc.Get(ctx, "short"); got != "" {
		t.Errorf("Get(expired) = %q, want empty", got)
	}

	ok, _ := svc.SetNX(ctx, "lock", 1, time.Minute)
	if !ok {
		t.Error("SetNX() first call = false, want true")
	}
	ok, _ = svc.SetNX(ctx, "lock", 1, time.Minute)
	if ok {
		t.Error("SetNX() second call = true, want false")
	}

	_ = svc.Set(ctx, "sitemap:paths", "[]", 0)
	keys, _ := svc.Scan(ctx, "sitemap:*")
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "sitemap:paths" || keys[1] != "sitemap:xml" {
		t.Errorf("Scan(sitemap:*) = %v", keys)
	}

	_ = svc.Delete(ctx, keys...)
	if got, _ := svc.Get(ctx, "sitemap:xml"); got != "" {
		t.Errorf("Get() after Delete = %q, want empty", got)
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		s, pattern string
		want       bool
	}{
		{"sitemap:xml", "sitemap:*", true},
		{"sitemap:xml", "*:xml", true},
		{"sitemap:xml", "s*m*l", true},
		{"sitemap:xml", "theme:*", false},
		{"ab", "a*b*b", false},
		{"abc", "abc", true},
		{"abc", "*", true},
	}
	for _, tt := range tests {
		if got := matchPattern(tt.s, tt.pattern); got != tt.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.s, tt.pattern, got, tt.want)
		}
	}
}

func TestGetCacheServiceTypeFallback(t *testing.T) {
	svc := NewCacheServiceWithFallback(nil)
	defer svc.(*memoryCacheService).Stop()
	if got := GetCacheServiceType(svc); got != CacheTypeMemory {
		t.Errorf("GetCacheServiceType() = %q, want memory", got)
	}
}
