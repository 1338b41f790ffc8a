package engine

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// lockedRand 加锁的随机数源，不同 key 上的命令会并发调用
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(seed uint64) *lockedRand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedRand{
		r: rand.New(rand.NewSource(seed)),
	}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
