/*
 * @Description: CSS 变量快照与恢复
 * @Author: 安知鱼
 * @Date: 2025-10-22 09:40:12
 * @LastEditTime: 2025-10-22 11:03:57
 * @LastEditors: 安知鱼
 */
package cssvar

import "strings"

// Reader 读取变量当前的计算值，形如 CSSStyleDeclaration.getPropertyValue。
type Reader interface {
	GetPropertyValue(name string) string
}

// Writer 写入或移除变量，形如 CSSStyleDeclaration.setProperty / removeProperty。
type Writer interface {
	SetProperty(name, value string)
	RemoveProperty(name string)
}

// Entry 记录单个变量在快照时刻的状态。
type Entry struct {
	Exists bool   `json:"exists"`
	Value  string `json:"value"`
}

// Snapshot 变量名到状态的映射。
type Snapshot map[string]Entry

// Take 读取 names 中每个变量的当前值并记录下来。
// 值为空或只有空白时记为不存在，与从未设置过的变量不作区分。
func Take(names []string, reader Reader) Snapshot {
	snapshot := make(Snapshot, len(names))
	for _, name := range names {
		value := strings.TrimSpace(reader.GetPropertyValue(name))
		snapshot[name] = Entry{Exists: value != "", Value: value}
	}
	return snapshot
}

// Restore 把变量恢复到快照时的状态：存在的重新写入，不存在的移除。
func Restore(snapshot Snapshot, writer Writer) {
	for name, entry := range snapshot {
		if entry.Exists {
			writer.SetProperty(name, entry.Value)
			continue
		}
		writer.RemoveProperty(name)
	}
}
