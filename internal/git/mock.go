package git

import (
	"context"
	"strings"
	"sync"
)

// MockRunner is a scripted [Runner] for tests.
// Responses are keyed by the space-joined arguments; unknown invocations are
// absent unless Func is set.
type MockRunner struct {
	// Responses maps "rev-parse --short HEAD" style keys to output.
	Responses map[string]string

	// Func, if set, handles invocations missing from Responses.
	Func func(ctx context.Context, dir string, args ...string) (string, bool)

	mu    sync.Mutex
	calls []string
}

// Run implements [Runner].
func (m *MockRunner) Run(ctx context.Context, dir string, args ...string) (string, bool) {
	key := strings.Join(args, " ")

	m.mu.Lock()
	m.calls = append(m.calls, key)
	m.mu.Unlock()

	if out, ok := m.Responses[key]; ok {
		return out, true
	}
	if m.Func != nil {
		return m.Func(ctx, dir, args...)
	}
	return "", false
}

// Calls returns the invocations seen so far, in arrival order.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
