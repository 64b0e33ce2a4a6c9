package panics

import (
	"os"
	"testing"
	"time"

	"github.com/huynhtastic/programmingbitcoin/infrastructure/logger"
)

func TestGoroutineWrapperFunc(t *testing.T) {
	spawn := GoroutineWrapperFunc(logger.RegisterSubSystem("TEST"))

	done := make(chan struct{})
	spawn(func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("spawned function did not run")
	}
}

func TestGoroutineWrapperFuncPanic(t *testing.T) {
	exitCodes := make(chan int, 1)
	osExit = func(code int) { exitCodes <- code }
	defer func() { osExit = os.Exit }()

	// A backend of its own, so closing it leaves the shared one alone.
	log := logger.NewBackend().Logger("PNIC")
	spawn := GoroutineWrapperFunc(log)
	spawn(func() {
		panic("unreachable peer state")
	})

	select {
	case code := <-exitCodes:
		if code != 1 {
			t.Errorf("exit code: got %d, want 1", code)
		}
	case <-time.After(2 * exitTimeout):
		t.Fatalf("panicking goroutine did not exit")
	}
}
