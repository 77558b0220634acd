/*
 * @Description: 内存缓存服务实现（用于 Redis 不可用时的降级方案）
 * @Author: 安知鱼
 * @Date: 2025-10-05 00:00:00
 * @LastEditTime: 2025-10-23 15:10:27
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// cacheItem 缓存项结构
type cacheItem struct {
	value      string
	expiration time.Time
	hasExpiry  bool
}

func (item *cacheItem) isExpired() bool {
	if !item.hasExpiry {
		return false
	}
	return time.Now().After(item.expiration)
}

// memoryCacheService 是基于内存的缓存服务实现
type memoryCacheService struct {
	mu     sync.Mutex
	data   map[string]*cacheItem
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewMemoryCacheService 创建内存缓存服务实例
func NewMemoryCacheService() CacheService {
	svc := &memoryCacheService{
		data:   make(map[string]*cacheItem),
		ticker: time.NewTicker(1 * time.Minute), // 每分钟清理一次过期数据
		done:   make(chan struct{}),
	}
	go svc.cleanupExpired()
	return svc
}

// cleanupExpired 定期清理过期的缓存项
func (s *memoryCacheService) cleanupExpired() {
	for {
		select {
		case <-s.ticker.C:
			s.mu.Lock()
			for key, item := range s.data {
				if item.isExpired() {
					delete(s.data, key)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// Stop 停止清理任务
func (s *memoryCacheService) Stop() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}

func newCacheItem(value interface{}, expiration time.Duration) *cacheItem {
	item := &cacheItem{
		value:     toCacheString(value),
		hasExpiry: expiration > 0,
	}
	if expiration > 0 {
		item.expiration = time.Now().Add(expiration)
	}
	return item
}

// toCacheString 与 go-redis 写入时的字符串化规则保持一致，[]byte 按原始内容保存。
func toCacheString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (s *memoryCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = newCacheItem(value, expiration)
	return nil
}

func (s *memoryCacheService) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.data[key]
	if !ok {
		return "", nil
	}
	if item.isExpired() {
		delete(s.data, key)
		return "", nil
	}
	return item.value, nil
}

func (s *memoryCacheService) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *memoryCacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item, ok := s.data[key]; ok && !item.isExpired() {
		return false, nil
	}
	s.data[key] = newCacheItem(value, expiration)
	return true, nil
}

// Scan 查找匹配的键（简单实现，只支持 * 通配符）
func (s *memoryCacheService) Scan(ctx context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for key, item := range s.data {
		if !item.isExpired() && matchPattern(key, pattern) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// matchPattern 简单的模式匹配（支持 * 通配符）
func matchPattern(s, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return s == pattern
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	last := parts[len(parts)-1]
	if len(s) < len(parts[0])+len(last) || !strings.HasSuffix(s, last) {
		return false
	}

	rest := s[len(parts[0]) : len(s)-len(last)]
	for _, part := range parts[1 : len(parts)-1] {
		pos := strings.Index(rest, part)
		if pos == -1 {
			return false
		}
		rest = rest[pos+len(part):]
	}
	return true
}
