package sitemap

import (
	"encoding/xml"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestBuilderDedupAndNormalize(t *testing.T) {
	b := NewBuilder()
	b.Add(Entry{Path: "/", ChangeFreq: ChangeFreqDaily, Priority: 1})
	b.AddPaths([]string{"/archives/", "/archives", "/admin", "javascript:void(0)", "/tags?x=1"}, ChangeFreqWeekly, 0.6)
	if added := b.AddPaths([]string{"/tags", "/music"}, ChangeFreqMonthly, 0.5); added != 1 {
		t.Errorf("AddPaths() added = %d, want 1", added)
	}

	want := []string{"/", "/archives", "/tags", "/music"}
	if got := b.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	if b.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", b.Len(), len(want))
	}
}

func TestBuilderURLSet(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	b := NewBuilder()
	b.Add(ArticleEntry("/posts/abc", now.Add(-2*time.Hour), now))
	b.Add(ArticleEntry("/posts/old", now.Add(-400*24*time.Hour), now))
	b.Add(Entry{Path: "/link", ChangeFreq: ChangeFreqWeekly, Priority: 0.6})

	set := b.URLSet("https://blog.anheyu.com")
	if set.Xmlns != SitemapNamespace || len(set.URLs) != 3 {
		t.Fatalf("URLSet() = %+v", set)
	}
	if got := set.URLs[0]; got.Location != "https://blog.anheyu.com/posts/abc" || got.ChangeFreq != "daily" || got.Priority != 0.9 {
		t.Errorf("URLs[0] = %+v", got)
	}
	if got := set.URLs[1]; got.ChangeFreq != "yearly" || got.Priority != 0.6 {
		t.Errorf("URLs[1] = %+v", got)
	}
	if got := set.URLs[2]; got.LastModified != "" {
		t.Errorf("URLs[2].LastModified = %q, want omitted", got.LastModified)
	}

	out, err := xml.Marshal(set)
	if err != nil {
		t.Fatalf("xml.Marshal() error = %v", err)
	}
	if !strings.HasPrefix(string(out), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Errorf("xml = %s", out)
	}
	if strings.Count(string(out), "<lastmod>") != 2 {
		t.Errorf("xml should contain 2 lastmod elements: %s", out)
	}
}

func TestArticleFreshness(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		age          time.Duration
		wantFreq     ChangeFrequency
		wantPriority float32
	}{
		{time.Hour, ChangeFreqDaily, 0.9},
		{3 * 24 * time.Hour, ChangeFreqWeekly, 0.8},
		{10 * 24 * time.Hour, ChangeFreqMonthly, 0.7},
		{90 * 24 * time.Hour, ChangeFreqYearly, 0.6},
	}
	for _, tt := range tests {
		freq, priority := articleFreshness(now.Add(-tt.age), now)
		if freq != tt.wantFreq || priority != tt.wantPriority {
			t.Errorf("articleFreshness(age=%v) = (%s, %v), want (%s, %v)", tt.age, freq, priority, tt.wantFreq, tt.wantPriority)
		}
	}
}
