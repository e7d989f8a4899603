// Package leaktest detects goroutines that outlive the scenario that
// spawned them. The lock manager and propagation engine must not leave
// waiters behind after a cascade finishes, so concurrency tests wrap
// their scenarios in these checks.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// settleDelay gives finished goroutines time to be reaped before counting
const settleDelay = 50 * time.Millisecond

// GoroutineChecker compares goroutine counts around a scenario
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines survived
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)
	runtime.GC()
	time.Sleep(settleDelay)

	after := runtime.NumGoroutine()
	leaked := after - g.before

	if leaked > tolerance {
		g.t.Errorf("Goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails when any goroutine it started
// is still alive afterwards
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines blocks until the goroutine count drops to target or
// the timeout expires
func WaitForGoroutines(t *testing.T, target int, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		runtime.Gosched()
		if runtime.NumGoroutine() <= target {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Errorf("Timeout waiting for goroutines to finish: current=%d, target=%d",
		runtime.NumGoroutine(), target)
}
