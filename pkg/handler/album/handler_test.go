package album

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anzhiyu-c/anheyu-site/pkg/albumconfig"
	"github.com/anzhiyu-c/anheyu-site/pkg/service/setting"
	"github.com/anzhiyu-c/anheyu-site/pkg/siteconfig"

	"github.com/gin-gonic/gin"
)

type fakeFetcher struct {
	data siteconfig.Data
}

func (f *fakeFetcher) FetchSiteConfig(ctx context.Context) (siteconfig.Data, error) {
	return f.data, nil
}

func newRouter(t *testing.T, data siteconfig.Data) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := setting.NewSettingService(&fakeFetcher{data: data})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	h := NewHandler(svc)
	r := gin.New()
	r.GET("/api/public/album-filter", h.GetFilter)
	r.GET("/api/public/album-config", h.GetConfig)
	return r
}

func TestGetFilter(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		wantCategory  int
		wantSort      string
		wantCanonical string
		wantChanged   bool
	}{
		{
			name:          "query参数",
			target:        "/api/public/album-filter?query=" + "%3FcategoryId%3D7%26sort%3Dbogus",
			wantCategory:  7,
			wantSort:      "display_order_asc",
			wantCanonical: "?categoryId=7",
			wantChanged:   true,
		},
		{
			name:          "直接解析请求参数",
			target:        "/api/public/album-filter?sort=view_count_desc",
			wantSort:      "view_count_desc",
			wantCanonical: "?sort=view_count_desc",
		},
	}
	r := newRouter(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			var body struct {
				Data FilterResponse `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			got := body.Data
			if tt.wantCategory == 0 && got.Query.CategoryID != nil {
				t.Errorf("CategoryID = %d, want nil", *got.Query.CategoryID)
			}
			if tt.wantCategory != 0 && (got.Query.CategoryID == nil || *got.Query.CategoryID != tt.wantCategory) {
				t.Errorf("CategoryID = %v, want %d", got.Query.CategoryID, tt.wantCategory)
			}
			if got.Query.Sort != tt.wantSort || got.Canonical != tt.wantCanonical || got.Changed != tt.wantChanged {
				t.Errorf("data = %+v", got)
			}
			if len(got.SortKeys) != 4 {
				t.Errorf("SortKeys = %v", got.SortKeys)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	r := newRouter(t, siteconfig.Data{
		"album": map[string]interface{}{"layout_mode": "Waterfall", "page_size": 30},
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/album-config", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Data albumconfig.Config `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.LayoutMode != albumconfig.LayoutWaterfall || body.Data.PageSize != 30 {
		t.Errorf("config = %+v", body.Data)
	}
	if body.Data.WaterfallColumns != albumconfig.DefaultColumns {
		t.Errorf("columns = %+v, want defaults", body.Data.WaterfallColumns)
	}
}
