package siteconfig

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// String 把任意配置值转换成字符串。对象和数组返回空字符串。
func String(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

// Bool 把配置值解释为布尔值。
// 支持 bool、"true"/"false"/"1"/"0" 字符串以及数字（非零为真）。
func Bool(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(val)))
		return err == nil && b
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	default:
		return false
	}
}

// Int 把配置值解释为整数，只接受整数值（3.0 可以，3.5 不行）。
func Int(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) || val != math.Trunc(val) {
			return 0, false
		}
		return int(val), true
	case json.Number:
		n, err := strconv.Atoi(val.String())
		return n, err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		return n, err == nil
	default:
		return 0, false
	}
}

// List 把配置值解释为数组。JSON 字符串形式的数组会被解析。
func List(v interface{}) []interface{} {
	switch val := v.(type) {
	case []interface{}:
		return val
	case []map[string]interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case string:
		trimmed := strings.TrimSpace(val)
		if !strings.HasPrefix(trimmed, "[") {
			return nil
		}
		var out []interface{}
		if json.Unmarshal([]byte(trimmed), &out) != nil {
			return nil
		}
		return out
	default:
		return nil
	}
}

// Map 把配置值解释为对象。JSON 字符串形式的对象会被解析。
func Map(v interface{}) map[string]interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return val
	case Data:
		return val
	case string:
		trimmed := strings.TrimSpace(val)
		if !strings.HasPrefix(trimmed, "{") {
			return nil
		}
		var out map[string]interface{}
		if json.Unmarshal([]byte(trimmed), &out) != nil {
			return nil
		}
		return out
	default:
		return nil
	}
}
