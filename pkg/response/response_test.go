package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anzhiyu-c/anheyu-site/pkg/constant"

	"github.com/gin-gonic/gin"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "未找到", err: constant.ErrNotFound, want: http.StatusNotFound},
		{name: "包装后的CSS变量错误", err: fmt.Errorf("预览失败: %w", constant.ErrInvalidCSSVariable), want: http.StatusBadRequest},
		{name: "站点地址缺失", err: constant.ErrSiteURLMissing, want: http.StatusServiceUnavailable},
		{name: "后端不可用", err: fmt.Errorf("GET x: %w", constant.ErrBackendUnavailable), want: http.StatusBadGateway},
		{name: "令牌无效", err: constant.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "未知错误", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFromError(tt.err); got != tt.want {
				t.Errorf("StatusFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFailWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FailWithError(c, constant.ErrSiteURLMissing, "")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != http.StatusServiceUnavailable || body.Message != constant.ErrSiteURLMissing.Error() || body.Data != nil {
		t.Errorf("body = %+v", body)
	}
}
