package middleware

import (
	"net/http"

	"github.com/anzhiyu-c/anheyu-site/pkg/albumfilter"

	"github.com/gin-gonic/gin"
)

// AlbumPath 相册列表页路径
const AlbumPath = "/album"

// AlbumCanonicalRedirect 把相册页上非规范的筛选参数（非法值或默认值）301 到规范地址，
// 避免同一内容被搜索引擎收录为多个 URL。
func AlbumCanonicalRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request
		if req.URL.Path != AlbumPath || (req.Method != http.MethodGet && req.Method != http.MethodHead) {
			c.Next()
			return
		}
		canonical, changed := albumfilter.Canonical(req.URL.RawQuery)
		if !changed {
			c.Next()
			return
		}
		c.Redirect(http.StatusMovedPermanently, AlbumPath+canonical)
		c.Abort()
	}
}
