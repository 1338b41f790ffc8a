package lock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockIndicesOrder(t *testing.T) {
	locks := Make(16)
	keys := []string{"a", "b", "c", "d", "e", "a"}

	asc := locks.toLockIndices(keys, true)
	for i := 1; i < len(asc); i++ {
		assert.Less(t, asc[i-1], asc[i])
	}

	desc := locks.toLockIndices(keys, false)
	assert.Len(t, desc, len(asc))
	for i := 1; i < len(desc); i++ {
		assert.Greater(t, desc[i-1], desc[i])
	}
}

func TestRWLocksOverlappingKeys(t *testing.T) {
	locks := Make(8)

	// 同一个 key 既读又写，不能死锁
	done := make(chan struct{})
	go func() {
		locks.RWLocks([]string{"k"}, []string{"k", "other"})
		locks.RWUnLocks([]string{"k"}, []string{"k", "other"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RWLocks deadlocked")
	}
}

func TestWriteLockExcludes(t *testing.T) {
	locks := Make(1)
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.RWLocks([]string{"pool"}, nil)
			defer locks.RWUnLocks([]string{"pool"}, nil)
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestMakeWithNonPositiveSize(t *testing.T) {
	locks := Make(0)
	locks.Lock("x")
	locks.Unlock("x")
	locks.RLock("x")
	locks.RUnlock("x")
}
