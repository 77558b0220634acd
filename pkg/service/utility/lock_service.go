/*
 * @Description: 基于字符串键的互斥锁
 * @Author: 安知鱼
 * @Date: 2025-07-14 01:41:43
 * @LastEditTime: 2025-10-23 15:20:06
 * @LastEditors: 安知鱼
 */
package utility

import "sync"

// KeyLocker 提供了一个基于字符串键（例如缓存键）的锁机制，
// 确保对同一个键的耗时操作（如重新生成站点地图）不会被并发执行。
type KeyLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLocker 创建一个新的 KeyLocker 实例。
func NewKeyLocker() *KeyLocker {
	return &KeyLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock 为给定的键获取一个锁，已被占用时阻塞等待。
func (l *KeyLocker) Lock(key string) {
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mu.Unlock()

	lock.Lock()
}

// Unlock 释放给定键的锁。
// 键的数量是固定的少数几个，锁实例不回收。
func (l *KeyLocker) Unlock(key string) {
	l.mu.Lock()
	if lock, ok := l.locks[key]; ok {
		lock.Unlock()
	}
	l.mu.Unlock()
}
