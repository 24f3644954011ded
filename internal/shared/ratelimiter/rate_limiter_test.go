package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }
	rl.lastReset = now

	ok, _ := rl.Allow()
	assert.True(t, ok)
	ok, _ = rl.Allow()
	assert.True(t, ok)

	now = now.Add(20 * time.Second)
	ok, wait := rl.Allow()
	assert.False(t, ok, "third call in the window is rejected")
	assert.Equal(t, 40*time.Second, wait)

	now = now.Add(40 * time.Second)
	ok, _ = rl.Allow()
	assert.True(t, ok, "a new window starts after the interval")
}

func TestRateLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(10, time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow(); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}
