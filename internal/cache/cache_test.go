package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is an adjustable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)}
}

func TestGetOrCompute_CachesWithinTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	v, err := c.GetOrCompute("k", time.Minute, fn)
	if err != nil || v.(int) != 1 {
		t.Fatalf("first call: v=%v err=%v", v, err)
	}

	clock.Advance(30 * time.Second)
	v, err = c.GetOrCompute("k", time.Minute, fn)
	if err != nil || v.(int) != 1 {
		t.Fatalf("second call: v=%v err=%v", v, err)
	}
	if calls != 1 {
		t.Errorf("fn ran %d times, want 1", calls)
	}
}

func TestGetOrCompute_RecomputesAfterExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(clock.Now)

	calls := 0
	fn := func() (any, error) {
		calls++
		return calls, nil
	}

	if _, err := c.GetOrCompute("k", time.Minute, fn); err != nil {
		t.Fatal(err)
	}
	clock.Advance(2 * time.Minute)

	v, err := c.GetOrCompute("k", time.Minute, fn)
	if err != nil {
		t.Fatal(err)
	}
	if v.(int) != 2 || calls != 2 {
		t.Errorf("v=%v calls=%d, want recompute", v, calls)
	}
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c := New()

	boom := errors.New("boom")
	if _, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	// The failure left nothing behind; the next call computes fresh.
	v, err := c.GetOrCompute("k", time.Minute, func() (any, error) {
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Errorf("v=%v err=%v", v, err)
	}
}

func TestGetOrCompute_SingleFlight(t *testing.T) {
	c := New()

	var calls atomic.Int64
	release := make(chan struct{})
	fn := func() (any, error) {
		calls.Add(1)
		<-release
		return "done", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrCompute("k", time.Minute, fn)
			if err != nil || v != "done" {
				t.Errorf("v=%v err=%v", v, err)
			}
		}()
	}

	// Give the goroutines a moment to pile onto the same key.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("fn ran %d times, want 1", got)
	}
}

func TestForget(t *testing.T) {
	c := New()
	c.Set("k", 42, time.Minute)
	c.Forget("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected key to be gone")
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be gone")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be gone")
	}
}
