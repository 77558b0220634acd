package cssvar

import (
	"sort"
	"strings"
	"sync"
)

// PropertyMap 是并发安全的变量表，同时实现 Reader 与 Writer，
// 可在服务端替代浏览器的样式声明对象。
type PropertyMap struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewPropertyMap 创建变量表，initial 中的值会被原样写入。
func NewPropertyMap(initial map[string]string) *PropertyMap {
	m := &PropertyMap{props: make(map[string]string, len(initial))}
	for name, value := range initial {
		m.props[name] = value
	}
	return m
}

// GetPropertyValue 返回变量的值，不存在时返回空字符串。
func (m *PropertyMap) GetPropertyValue(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.props[name]
}

func (m *PropertyMap) SetProperty(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[name] = value
}

func (m *PropertyMap) RemoveProperty(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.props, name)
}

// Replace 整体替换变量表的内容。
func (m *PropertyMap) Replace(props map[string]string) {
	next := make(map[string]string, len(props))
	for name, value := range props {
		next[name] = value
	}
	m.mu.Lock()
	m.props = next
	m.mu.Unlock()
}

// Len 返回变量个数。
func (m *PropertyMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.props)
}

// Render 按变量名排序输出 selector{name:value;...}，空值的变量不输出。
func (m *PropertyMap) Render(selector string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return render(selector, m.props)
}

func render(selector string, props map[string]string) string {
	names := make([]string, 0, len(props))
	for name, value := range props {
		if strings.TrimSpace(value) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(selector)
	b.WriteString("{")
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(":")
		b.WriteString(strings.TrimSpace(props[name]))
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}
