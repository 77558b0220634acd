/*
 * @Description: 站点地图候选路径规范化
 * @Author: 安知鱼
 * @Date: 2025-10-21 09:30:12
 * @LastEditTime: 2025-10-23 18:02:55
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"net/url"
	"regexp"
	"strings"
)

// ExcludedPrefixes 不应出现在站点地图中的路径前缀（后台、登录、回调、外链跳转页）。
var ExcludedPrefixes = []string{
	"/admin",
	"/login",
	"/callback",
	"/external-link-warning",
}

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// IsExcludedPath 判断规范化后的路径是否以排除前缀开头。
func IsExcludedPath(path string) bool {
	for _, prefix := range ExcludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// NormalizeCandidatePath 将候选链接规范化为站内路径。
//
// 绝对地址只保留 path 部分；去掉查询串和锚点；相对路径补全前导斜杠；
// 除根路径外去掉末尾斜杠；结果统一为百分号编码形式。javascript:、mailto: 等
// 非 http(s) 协议、纯锚点或纯查询串以及后台/登录/回调路径返回 false。
// 对任意被接受的结果再次规范化结果不变。
func NormalizeCandidatePath(candidate string) (string, bool) {
	raw := strings.TrimSpace(candidate)
	if raw == "" {
		return "", false
	}

	var escaped string
	switch {
	case strings.HasPrefix(raw, "//"):
		u, err := url.Parse("https:" + raw)
		if err != nil {
			return "", false
		}
		escaped = u.EscapedPath()
	case schemePattern.MatchString(raw):
		u, err := url.Parse(raw)
		if err != nil {
			return "", false
		}
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return "", false
		}
		escaped = u.EscapedPath()
	default:
		escaped = raw
		if i := strings.IndexAny(escaped, "?#"); i >= 0 {
			escaped = escaped[:i]
		}
		if escaped == "" {
			return "", false
		}
	}

	path := normalizeSegments(escaped)
	if IsExcludedPath(path) {
		return "", false
	}
	return path, true
}

// normalizeSegments 逐段解码再编码：补全前导斜杠，合并重复斜杠，去掉末尾斜杠（根路径除外）。
// 段内编码的斜杠 %2F 保持编码，"/tags/a%2Fb" 与 "/tags/a/b" 是两个不同的路径。
func normalizeSegments(escaped string) string {
	segments := make([]string, 0, strings.Count(escaped, "/")+1)
	for _, seg := range strings.Split(escaped, "/") {
		if seg == "" {
			continue
		}
		if unescaped, err := url.PathUnescape(seg); err == nil {
			seg = unescaped
		}
		segments = append(segments, escapeSegment(seg))
	}
	return "/" + strings.Join(segments, "/")
}

func escapeSegment(seg string) string {
	return strings.ReplaceAll((&url.URL{Path: seg}).EscapedPath(), "/", "%2F")
}
