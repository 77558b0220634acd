// internal/infra/storage/local.go
package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider 把文件写入本机磁盘，供 Nginx 等静态服务器直接托管。
type LocalProvider struct {
	baseDir string
}

// NewLocalProvider 是 LocalProvider 的构造函数。
func NewLocalProvider(baseDir string) IStorageProvider {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "data/public"
	}
	return &LocalProvider{baseDir: baseDir}
}

func (p *LocalProvider) Name() string {
	return TypeLocal
}

// Put 先写入同目录下的临时文件再重命名，读者不会看到写了一半的文件。
func (p *LocalProvider) Put(ctx context.Context, name string, data []byte, contentType string) (*PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleanName := filepath.Clean("/" + name)
	if cleanName == "/" {
		return nil, fmt.Errorf("无效的文件名: %q", name)
	}
	physicalPath := filepath.Join(p.baseDir, cleanName)

	if err := os.MkdirAll(filepath.Dir(physicalPath), 0755); err != nil {
		return nil, fmt.Errorf("创建目录失败: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(physicalPath), ".tmp-"+filepath.Base(physicalPath)+"-*")
	if err != nil {
		return nil, fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("同步文件到磁盘失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return nil, fmt.Errorf("设置文件权限失败: %w", err)
	}
	if err := os.Rename(tmpName, physicalPath); err != nil {
		return nil, fmt.Errorf("重命名文件失败: %w", err)
	}

	log.Printf("[LocalProvider] 已写入 %s (%d bytes)", physicalPath, len(data))
	return &PublishResult{Location: physicalPath, Size: int64(len(data))}, nil
}
