/*
 * @Description: 站点配置（弱类型）读取工具
 * @Author: 安知鱼
 * @Date: 2025-10-20 10:12:41
 * @LastEditTime: 2025-10-24 16:03:18
 * @LastEditors: 安知鱼
 */
package siteconfig

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Data 是后端 /api/public/site-config 返回的站点配置树。
// 结构不受约束：同一个配置既可能是嵌套对象 {"album": {"layout_mode": "grid"}}，
// 也可能是扁平的点分键 {"album.layout_mode": "grid"}，值还可能是尚未解析的 JSON 字符串。
type Data map[string]interface{}

// Decode 将原始 JSON 解析为 Data。空输入或 null 返回空的 Data。
func Decode(raw []byte) (Data, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Data{}, nil
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = Data{}
	}
	return data, nil
}

// Get 按点分路径读取配置值，先尝试嵌套查找，再回退到扁平键。
func (d Data) Get(path string) (interface{}, bool) {
	return Lookup(d, path)
}

// String 读取字符串配置，缺失或类型不符时返回空字符串。
func (d Data) String(path string) string {
	v, _ := d.Get(path)
	return String(v)
}

// Bool 读取布尔配置，缺失或无法识别时返回 false。
func (d Data) Bool(path string) bool {
	v, _ := d.Get(path)
	return Bool(v)
}

// Int 读取整数配置，缺失或无法解析时返回 def。
func (d Data) Int(path string, def int) int {
	v, ok := d.Get(path)
	if !ok {
		return def
	}
	if n, ok := Int(v); ok {
		return n
	}
	return def
}

// List 读取数组配置。
func (d Data) List(path string) []interface{} {
	v, _ := d.Get(path)
	return List(v)
}

// Map 读取对象配置。
func (d Data) Map(path string) map[string]interface{} {
	v, _ := d.Get(path)
	return Map(v)
}

// Lookup 在任意对象树中按点分路径查找。
// 每一层都先按嵌套结构向下查找，失败后再把剩余路径前缀拼接成扁平键重试，
// 因此 {"footer": {"bar.linkList": [...]}} 这样的混合形态也能命中。
// 值为 null 视为不存在。
func Lookup(root map[string]interface{}, path string) (interface{}, bool) {
	path = strings.TrimSpace(path)
	if root == nil || path == "" {
		return nil, false
	}
	return lookup(root, strings.Split(path, "."))
}

func lookup(m map[string]interface{}, parts []string) (interface{}, bool) {
	if v, ok := m[parts[0]]; ok && v != nil {
		if len(parts) == 1 {
			return v, true
		}
		if child := Map(v); child != nil {
			if found, ok := lookup(child, parts[1:]); ok {
				return found, true
			}
		}
	}

	for i := 2; i <= len(parts); i++ {
		v, ok := m[strings.Join(parts[:i], ".")]
		if !ok || v == nil {
			continue
		}
		if i == len(parts) {
			return v, true
		}
		if child := Map(v); child != nil {
			if found, ok := lookup(child, parts[i:]); ok {
				return found, true
			}
		}
	}
	return nil, false
}
