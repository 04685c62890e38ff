package goroutine

import (
	"runtime"
	"testing"
	"time"
)

// AssertNoLeaks fails the test if, after it finishes, the goroutine count
// does not drop back to where it was when AssertNoLeaks was called.
func AssertNoLeaks(t testing.TB) {
	t.Helper()
	AssertNoLeaksWithTimeout(t, 5*time.Second, 50*time.Millisecond)
}

// AssertNoLeaksWithTimeout is AssertNoLeaks with a custom wait.
func AssertNoLeaksWithTimeout(t testing.TB, timeout, pollInterval time.Duration) {
	t.Helper()
	before := runtime.NumGoroutine()

	t.Cleanup(func() {
		deadline := time.Now().Add(timeout)
		for time.Now().Before(deadline) {
			if runtime.NumGoroutine() <= before {
				return
			}
			time.Sleep(pollInterval)
		}

		current := runtime.NumGoroutine()
		if current <= before {
			return
		}
		buf := make([]byte, 1<<20)
		n := runtime.Stack(buf, true)
		t.Errorf("goroutine leak detected: started with %d goroutines, ended with %d", before, current)
		t.Logf("Active goroutines:\n%s", buf[:n])
	})
}
