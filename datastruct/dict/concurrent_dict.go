package dict

import (
	"math"
	"sync"
	"sync/atomic"
)

// ConcurrentDict 分段加锁的并发安全 map
type ConcurrentDict[V any] struct {
	table []*shard[V]
	count int64
}

type shard[V any] struct {
	m     map[string]V
	mutex sync.RWMutex
}

var _ Dict[int] = (*ConcurrentDict[int])(nil)

// 得到大于等于 param 的最小2次幂作为分段数（最小16）
func computeCapacity(param int) (size int) {
	if param <= 16 {
		return 16
	}

	n := param - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	if n < 0 || n >= math.MaxInt32 {
		return math.MaxInt32
	}
	return n + 1
}

func MakeConcurrentDict[V any](shardCount int) *ConcurrentDict[V] {
	shardCount = computeCapacity(shardCount)
	table := make([]*shard[V], shardCount)
	for i := range table {
		table[i] = &shard[V]{
			m: make(map[string]V),
		}
	}

	return &ConcurrentDict[V]{
		table: table,
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

// 根据 key 的哈希值找到对应的 shard
func (c *ConcurrentDict[V]) getShard(key string) *shard[V] {
	if c == nil || c.table == nil {
		panic("dict is nil")
	}

	return c.table[fnv32(key)%uint32(len(c.table))]
}

func (c *ConcurrentDict[V]) Get(key string) (val V, exists bool) {
	s := c.getShard(key)
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	val, exists = s.m[key]
	return
}

func (c *ConcurrentDict[V]) Len() int {
	return int(atomic.LoadInt64(&c.count))
}

// Put 返回新增kv的数量，更新返回 0
func (c *ConcurrentDict[V]) Put(key string, val V) (result int) {
	s := c.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.m[key]; ok {
		s.m[key] = val
		return 0
	}

	s.m[key] = val
	atomic.AddInt64(&c.count, 1)
	return 1
}

// PutIfAbsent 如果不存在就新增，不做更新操作，返回新增的数量
func (c *ConcurrentDict[V]) PutIfAbsent(key string, val V) (result int) {
	s := c.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.m[key]; ok {
		return 0
	}

	s.m[key] = val
	atomic.AddInt64(&c.count, 1)
	return 1
}

// Remove 删除，返回删除的数量
func (c *ConcurrentDict[V]) Remove(key string) (result int) {
	s := c.getShard(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.m[key]; ok {
		delete(s.m, key)
		atomic.AddInt64(&c.count, -1)
		return 1
	}

	return 0
}

// Clear 逐个 shard 清空，count 按每个 shard 实际删除的数量减少
func (c *ConcurrentDict[V]) Clear() {
	for _, s := range c.table {
		s.mutex.Lock()
		removed := len(s.m)
		s.m = make(map[string]V)
		atomic.AddInt64(&c.count, -int64(removed))
		s.mutex.Unlock()
	}
}
