// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals defines the signals that are handled as interrupts.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// InterruptContext returns a context derived from parent that is canceled on
// the first interrupt signal or when the returned cancel function is called.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	interruptChannel := make(chan os.Signal, 1)
	signal.Notify(interruptChannel, interruptSignals...)
	return interruptContext(parent, interruptChannel)
}

// interruptContext cancels the returned context when a signal arrives on
// interruptChannel.
func interruptContext(parent context.Context, interruptChannel chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	spawn(func() {
		select {
		case sig := <-interruptChannel:
			log.Infof("Received signal (%s). Shutting down...", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(interruptChannel)
	})
	return ctx, cancel
}
