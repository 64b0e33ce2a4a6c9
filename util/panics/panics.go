// Package panics turns a panic in a background goroutine into a logged exit
// of the process.
package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/huynhtastic/programmingbitcoin/infrastructure/logger"
)

// exitTimeout bounds how long the log gets to flush before the process exits
// anyway.
const exitTimeout = 5 * time.Second

var osExit = os.Exit

// GoroutineWrapperFunc returns a spawn function for the subsystem of log. A
// goroutine started through it that panics logs the panic with its own stack
// and the stack of the spawn site, flushes the log and exits with status 1.
func GoroutineWrapperFunc(log *logger.Logger) func(func()) {
	return func(f func()) {
		spawnStack := debug.Stack()
		go func() {
			defer HandlePanic(log, spawnStack)
			f()
		}()
	}
}

// HandlePanic recovers a panic and exits the process. It must be deferred
// directly. spawnStack may be nil when the goroutine was not spawned through
// GoroutineWrapperFunc.
func HandlePanic(log *logger.Logger, spawnStack []byte) {
	if reason := recover(); reason != nil {
		exit(log, reason, debug.Stack(), spawnStack)
	}
}

func exit(log *logger.Logger, reason interface{}, stack, spawnStack []byte) {
	flushed := make(chan struct{})
	go func() {
		defer close(flushed)
		log.Criticalf("Fatal error: %+v", reason)
		log.Criticalf("Stack trace: %s", stack)
		if spawnStack != nil {
			log.Criticalf("Spawned at: %s", spawnStack)
		}
		log.Backend().Close()
	}()

	select {
	case <-flushed:
	case <-time.After(exitTimeout):
		fmt.Fprintln(os.Stderr, "Timed out flushing the log.")
	}
	fmt.Fprintf(os.Stderr, "Fatal error: %+v\n", reason)
	osExit(1)
}
