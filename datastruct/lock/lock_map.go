package lock

import (
	"sort"
	"sync"
)

// Locks 按 key 的哈希值分段的读写锁表
//
// 多个 key 加锁时总是按下标从小到大加锁，从大到小解锁，避免死锁
type Locks struct {
	tables []*sync.RWMutex
}

func Make(tableSize int) *Locks {
	if tableSize <= 0 {
		tableSize = 1
	}

	tables := make([]*sync.RWMutex, tableSize)
	for i := range tables {
		tables[i] = &sync.RWMutex{}
	}
	return &Locks{
		tables: tables,
	}
}

const prime32 = uint32(16777619)

func fnv32(key string) uint32 {
	hash := uint32(2166136261)
	for i := 0; i < len(key); i++ {
		hash *= prime32
		hash ^= uint32(key[i])
	}
	return hash
}

func (locks *Locks) spread(key string) uint32 {
	if locks == nil || locks.tables == nil {
		panic("locks is nil")
	}

	return fnv32(key) % uint32(len(locks.tables))
}

func (locks *Locks) Lock(key string) {
	locks.tables[locks.spread(key)].Lock()
}

func (locks *Locks) Unlock(key string) {
	locks.tables[locks.spread(key)].Unlock()
}

func (locks *Locks) RLock(key string) {
	locks.tables[locks.spread(key)].RLock()
}

func (locks *Locks) RUnlock(key string) {
	locks.tables[locks.spread(key)].RUnlock()
}

// toLockIndices 计算 keys 对应的去重后的下标，ascending 为 true 时从小到大排序
func (locks *Locks) toLockIndices(keys []string, ascending bool) []uint32 {
	indexSet := make(map[uint32]struct{}, len(keys))
	for _, key := range keys {
		indexSet[locks.spread(key)] = struct{}{}
	}

	indices := make([]uint32, 0, len(indexSet))
	for index := range indexSet {
		indices = append(indices, index)
	}

	sort.Slice(indices, func(i, j int) bool {
		if ascending {
			return indices[i] < indices[j]
		}
		return indices[i] > indices[j]
	})

	return indices
}

func (locks *Locks) writeIndices(writeKeys []string) map[uint32]struct{} {
	indices := make(map[uint32]struct{}, len(writeKeys))
	for _, key := range writeKeys {
		indices[locks.spread(key)] = struct{}{}
	}
	return indices
}

// RWLocks 对 writeKeys 加写锁，对 readKeys 加读锁
// 同一个下标既要读又要写时只加写锁
func (locks *Locks) RWLocks(writeKeys []string, readKeys []string) {
	keys := make([]string, 0, len(writeKeys)+len(readKeys))
	keys = append(keys, writeKeys...)
	keys = append(keys, readKeys...)

	writes := locks.writeIndices(writeKeys)
	for _, index := range locks.toLockIndices(keys, true) {
		if _, needWrite := writes[index]; needWrite {
			locks.tables[index].Lock()
			continue
		}
		locks.tables[index].RLock()
	}
}

// RWUnLocks 释放 RWLocks 加的锁
func (locks *Locks) RWUnLocks(writeKeys []string, readKeys []string) {
	keys := make([]string, 0, len(writeKeys)+len(readKeys))
	keys = append(keys, writeKeys...)
	keys = append(keys, readKeys...)

	writes := locks.writeIndices(writeKeys)
	for _, index := range locks.toLockIndices(keys, false) {
		if _, needWrite := writes[index]; needWrite {
			locks.tables[index].Unlock()
			continue
		}
		locks.tables[index].RUnlock()
	}
}
