/*
 * @Description: 相册筛选参数与 URL 查询串的互相转换
 * @Author: 安知鱼
 * @Date: 2025-10-21 14:18:36
 * @LastEditTime: 2025-10-23 20:11:04
 * @LastEditors: 安知鱼
 */
package albumfilter

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// ParamCategoryID 分类筛选参数名
	ParamCategoryID = "categoryId"
	// ParamSort 排序参数名
	ParamSort = "sort"
)

// 排序方式，与后端相册仓储支持的排序键一致。
const (
	SortDisplayOrderAsc = "display_order_asc"
	SortCreatedAtAsc    = "created_at_asc"
	SortCreatedAtDesc   = "created_at_desc"
	SortViewCountDesc   = "view_count_desc"

	DefaultSort = SortDisplayOrderAsc
)

// SortKeys 所有合法的排序方式。
var SortKeys = []string{SortDisplayOrderAsc, SortCreatedAtAsc, SortCreatedAtDesc, SortViewCountDesc}

// Query 相册列表的筛选状态。CategoryID 为 nil 表示不按分类筛选。
type Query struct {
	CategoryID *int   `json:"categoryId"`
	Sort       string `json:"sort"`
}

// Default 返回默认筛选状态。
func Default() Query {
	return Query{Sort: DefaultSort}
}

// IsValidSort 判断排序方式是否合法。
func IsValidSort(sort string) bool {
	for _, key := range SortKeys {
		if key == sort {
			return true
		}
	}
	return false
}

// Normalize 把非法字段替换为默认值：非正数的分类 ID 视为未筛选，未知排序回退为默认排序。
func (q Query) Normalize() Query {
	out := Query{Sort: q.Sort}
	if q.CategoryID != nil && *q.CategoryID > 0 {
		id := *q.CategoryID
		out.CategoryID = &id
	}
	if !IsValidSort(out.Sort) {
		out.Sort = DefaultSort
	}
	return out
}

// IsDefault 判断规范化后是否等于默认筛选状态。
func (q Query) IsDefault() bool {
	n := q.Normalize()
	return n.CategoryID == nil && n.Sort == DefaultSort
}

// Parse 从查询串中读取筛选状态，非法值一律回退为默认值。
// 同名参数只看第一次出现的值。
func Parse(rawQuery string) Query {
	q := Default()
	seenCategory, seenSort := false, false
	for _, p := range splitParams(rawQuery) {
		key, value := p.decode()
		switch key {
		case ParamCategoryID:
			if seenCategory {
				continue
			}
			seenCategory = true
			if id, ok := parsePositiveInt(value); ok {
				q.CategoryID = &id
			}
		case ParamSort:
			if seenSort {
				continue
			}
			seenSort = true
			if IsValidSort(value) {
				q.Sort = value
			}
		}
	}
	return q
}

// Build 在保留其他参数（顺序与原始编码不变）的前提下写入筛选状态。
// categoryId 与 sort 等于默认值时从结果中完全省略，使默认状态的链接保持规范。
// 返回值为空字符串或以 "?" 开头。
func Build(existing string, q Query) string {
	q = q.Normalize()

	var categoryValue, sortValue string
	if q.CategoryID != nil {
		categoryValue = strconv.Itoa(*q.CategoryID)
	}
	if q.Sort != DefaultSort {
		sortValue = q.Sort
	}

	params := splitParams(existing)
	params = setParam(params, ParamCategoryID, categoryValue)
	params = setParam(params, ParamSort, sortValue)

	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.raw
	}
	return "?" + strings.Join(parts, "&")
}

// Canonical 返回查询串的规范形式，以及它是否与输入不同。
func Canonical(rawQuery string) (string, bool) {
	canonical := Build(rawQuery, Parse(rawQuery))
	return canonical, canonical != withQuestionMark(rawQuery)
}

func withQuestionMark(rawQuery string) string {
	trimmed := strings.TrimPrefix(rawQuery, "?")
	if trimmed == "" {
		return ""
	}
	return "?" + trimmed
}

// parsePositiveInt 只接受纯十进制数字组成的正整数。
func parsePositiveInt(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// param 是查询串中的一个原始片段，raw 保持原样以便原封不动地写回。
type param struct {
	raw string
}

func (p param) decode() (string, string) {
	key, value, _ := strings.Cut(p.raw, "=")
	return unescape(key), unescape(value)
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}

func splitParams(rawQuery string) []param {
	rawQuery = strings.TrimPrefix(strings.TrimSpace(rawQuery), "?")
	if rawQuery == "" {
		return nil
	}
	var params []param
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		params = append(params, param{raw: segment})
	}
	return params
}

// setParam 模拟 URLSearchParams.set/delete：value 为空时删除全部同名参数；
// 否则替换第一次出现的位置并删除其余同名参数，不存在时追加到末尾。
func setParam(params []param, name, value string) []param {
	out := make([]param, 0, len(params)+1)
	replaced := false
	for _, p := range params {
		if key, _ := p.decode(); key != name {
			out = append(out, p)
			continue
		}
		if value != "" && !replaced {
			out = append(out, param{raw: url.QueryEscape(name) + "=" + url.QueryEscape(value)})
			replaced = true
		}
	}
	if value != "" && !replaced {
		out = append(out, param{raw: url.QueryEscape(name) + "=" + url.QueryEscape(value)})
	}
	return out
}
