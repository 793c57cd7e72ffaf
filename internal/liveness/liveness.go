// Package liveness shuts the service down once its client stops polling.
//
// The dashboard page sends a keepalive request every second. Every inbound
// request calls [Supervisor.Touch]; [Supervisor.Run] checks on a fixed tick
// and returns [ErrExpired] once the last touch is older than the timeout.
// The caller owns the reaction (closing listeners, exiting).
package liveness

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultInterval is how often the supervisor checks for expiry.
	DefaultInterval = time.Second
	// DefaultTimeout is how long the supervisor waits without a touch.
	DefaultTimeout = 5 * time.Second
)

// ErrExpired is returned by [Supervisor.Run] when no touch arrived in time.
var ErrExpired = errors.New("keepalive expired")

// Clock abstracts time so tests can drive the supervisor without sleeping.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker is the subset of [time.Ticker] the supervisor needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) NewTicker(d time.Duration) Ticker { return systemTicker{time.NewTicker(d)} }

type systemTicker struct{ t *time.Ticker }

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }

// checker is implemented by tickers that want to know when a tick has been
// evaluated. [FakeClock] uses it to make Tick synchronous.
type checker interface{ checked() }

func tickChecked(t Ticker) {
	if c, ok := t.(checker); ok {
		c.checked()
	}
}

// Supervisor tracks the last time the service was used.
type Supervisor struct {
	clock    Clock
	interval time.Duration
	timeout  time.Duration

	mu       sync.Mutex
	lastSeen time.Time

	once sync.Once
}

// New creates a supervisor whose last-seen time starts at clock.Now().
// A non-positive timeout disables supervision and New returns nil; a
// non-positive interval falls back to [DefaultInterval].
func New(clock Clock, interval, timeout time.Duration) *Supervisor {
	if timeout <= 0 {
		return nil
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Supervisor{
		clock:    clock,
		interval: interval,
		timeout:  timeout,
		lastSeen: clock.Now(),
	}
}

// Touch records activity. The last-seen time never moves backwards.
// Touching a nil supervisor does nothing.
func (s *Supervisor) Touch() {
	if s == nil {
		return
	}
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

// LastSeen returns the time of the most recent touch.
func (s *Supervisor) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SinceTouch returns the time elapsed since the most recent touch.
func (s *Supervisor) SinceTouch() time.Duration {
	return s.clock.Now().Sub(s.LastSeen())
}

// Expired reports whether the timeout has been exceeded.
func (s *Supervisor) Expired() bool {
	return s.SinceTouch() > s.timeout
}

// Timeout returns the configured timeout.
func (s *Supervisor) Timeout() time.Duration {
	return s.timeout
}

// Run checks for expiry on every tick until ctx is done or the timeout is
// exceeded. It returns ctx.Err() or [ErrExpired]; ErrExpired is reported by
// at most one call for the lifetime of the supervisor.
func (s *Supervisor) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			if !s.Expired() {
				tickChecked(ticker)
				continue
			}
			fired := false
			s.once.Do(func() { fired = true })
			if fired {
				return ErrExpired
			}
			ticker.Stop()
			<-ctx.Done()
			return ctx.Err()
		}
	}
}
