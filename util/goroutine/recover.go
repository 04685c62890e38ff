// Package goroutine runs background work without letting a panic take the
// process down.
package goroutine

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// StackTraceBufferSize is the buffer size for stack trace collection
const StackTraceBufferSize = 4096

// Recover logs a panic raised in the calling goroutine. It must be deferred.
// Without a logger the panic goes to stderr.
func Recover(name string, logger *zap.SugaredLogger) {
	r := recover()
	if r == nil {
		return
	}

	buf := make([]byte, StackTraceBufferSize)
	n := runtime.Stack(buf, false)

	if logger == nil {
		fmt.Fprintf(os.Stderr, "PANIC in goroutine %s (no logger): %v\n%s\n", name, r, buf[:n])
		return
	}
	logger.Errorw("Goroutine panic recovered",
		"goroutine", name,
		"panic", r,
		"stack", string(buf[:n]))
}

// Go runs fn in a goroutine tracked by wg, recovering and logging panics.
func Go(wg *sync.WaitGroup, name string, logger *zap.SugaredLogger, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer Recover(name, logger)
		fn()
	}()
}
