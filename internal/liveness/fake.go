package liveness

import (
	"sync"
	"time"
)

// FakeClock is a manually advanced [Clock] for tests.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

// NewFakeClock returns a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now implements [Clock].
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NewTicker implements [Clock]. The ticker fires only from [FakeClock.Tick].
func (c *FakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{
		c:    make(chan time.Time),
		ack:  make(chan struct{}),
		stop: make(chan struct{}),
	}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves the clock forward by d without firing tickers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Tick advances the clock by d and delivers one tick to every live ticker.
// It returns once every receiver has finished checking the tick or stopped
// its ticker.
func (c *FakeClock) Tick(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	tickers := append([]*fakeTicker(nil), c.tickers...)
	c.mu.Unlock()

	for _, t := range tickers {
		t.send(now)
	}
}

// Tickers returns the number of tickers that have not been stopped.
func (c *FakeClock) Tickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

type fakeTicker struct {
	c    chan time.Time
	ack  chan struct{}
	stop chan struct{}
	once sync.Once
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

func (t *fakeTicker) isStopped() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

func (t *fakeTicker) send(now time.Time) {
	select {
	case t.c <- now:
	case <-t.stop:
		return
	}
	select {
	case <-t.ack:
	case <-t.stop:
	}
}

// checked is called by [Supervisor.Run] after it has evaluated a tick.
func (t *fakeTicker) checked() {
	select {
	case t.ack <- struct{}{}:
	case <-t.stop:
	}
}
