package sitemap

import (
	"strconv"
	"strings"
)

// BuildPaginationPaths 返回集合第 2 页到最后一页的路径，形如 {basePath}/page/{n}。
// 第 1 页即 basePath 本身，不包含在结果中；总页数不超过 1 时返回空切片。
func BuildPaginationPaths(basePath string, totalItems, pageSize int) []string {
	if pageSize <= 0 || totalItems <= pageSize {
		return []string{}
	}
	totalPages := (totalItems + pageSize - 1) / pageSize

	base := strings.TrimRight(basePath, "/")
	paths := make([]string, 0, totalPages-1)
	for page := 2; page <= totalPages; page++ {
		paths = append(paths, base+"/page/"+strconv.Itoa(page))
	}
	return paths
}
