package sitemap

// Builder 汇总来自不同数据源的站点地图记录。
// 每条记录的路径都会先规范化，非法或被排除的路径直接丢弃，重复路径只保留第一次出现的记录。
type Builder struct {
	set     *pathSet
	entries []Entry
}

// NewBuilder 创建空的 Builder
func NewBuilder() *Builder {
	return &Builder{set: newPathSet()}
}

// Add 加入一条记录，返回是否被采纳
func (b *Builder) Add(entry Entry) bool {
	path, ok := NormalizeCandidatePath(entry.Path)
	if !ok || !b.set.add(path) {
		return false
	}
	entry.Path = path
	b.entries = append(b.entries, entry)
	return true
}

// AddPaths 以相同的更新频率和优先级批量加入路径，返回被采纳的数量
func (b *Builder) AddPaths(paths []string, freq ChangeFrequency, priority float32) int {
	added := 0
	for _, path := range paths {
		if b.Add(Entry{Path: path, ChangeFreq: freq, Priority: priority}) {
			added++
		}
	}
	return added
}

// Len 返回已采纳的记录数
func (b *Builder) Len() int {
	return len(b.entries)
}

// Paths 按加入顺序返回全部路径
func (b *Builder) Paths() []string {
	paths := make([]string, len(b.entries))
	for i := range b.entries {
		paths[i] = b.entries[i].Path
	}
	return paths
}

// URLSet 拼接站点根地址生成 XML 根元素，baseURL 不应以斜杠结尾
func (b *Builder) URLSet(baseURL string) *URLSet {
	set := &URLSet{
		Xmlns: SitemapNamespace,
		URLs:  make([]URL, len(b.entries)),
	}
	for i := range b.entries {
		set.URLs[i] = b.entries[i].ToURL(baseURL)
	}
	return set
}
