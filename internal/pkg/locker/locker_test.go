package locker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLock_SerializesSameKey(t *testing.T) {
	l := New()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("emp-1|2025-03-10")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestLock_IndependentKeysDoNotBlock(t *testing.T) {
	l := New()

	unlockA := l.Lock("a")

	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()

	<-done
	unlockA()
}

func TestLock_EntryRemovedWhenReleased(t *testing.T) {
	l := New()

	unlock := l.Lock("a")
	l.mu.Lock()
	assert.Len(t, l.locks, 1)
	l.mu.Unlock()

	unlock()
	l.mu.Lock()
	assert.Empty(t, l.locks)
	l.mu.Unlock()
}

func TestLock_ReusableAfterRelease(t *testing.T) {
	l := New()

	unlock := l.Lock("a")
	unlock()

	unlock = l.Lock("a")
	unlock()
}
