package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// Flags adding the logging callsite to every entry. They are read from the
// comma separated LOGFLAGS environment variable, e.g. LOGFLAGS=shortfile.
const (
	// LogFlagLongFile adds the path below the module root and the line,
	// e.g. peer/peer.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile adds the file name and line, e.g. peer.go:123. It
	// wins over LogFlagLongFile.
	LogFlagShortFile
)

func flagsFromEnv() uint32 {
	var flags uint32
	for _, flag := range strings.Split(os.Getenv("LOGFLAGS"), ",") {
		switch strings.TrimSpace(flag) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

// entriesBuffer lets short bursts of script engine traces queue up without
// waiting on the writers.
const entriesBuffer = 64

// Rotation bounds a log file: it is rolled once it reaches ThresholdKB and
// only the last MaxRolls rolled files are kept.
type Rotation struct {
	ThresholdKB int64
	MaxRolls    int
}

// DefaultRotation keeps up to 8 rolls of 100 MB.
var DefaultRotation = Rotation{ThresholdKB: 100 * 1000, MaxRolls: 8}

type logEntry struct {
	log   []byte
	level Level
}

type logWriter struct {
	io.WriteCloser
	level Level
}

// Backend fans the entries of its subsystem loggers out to a set of writers.
// Writers are added before Run. Entries are queued on a channel and written
// by a single goroutine, so writers never see interleaved entries.
type Backend struct {
	flag    uint32
	writers []logWriter

	// mtx guards the state below. Senders hold it for reading while they
	// queue an entry, so Close never closes entries under a sender.
	mtx     sync.RWMutex
	running bool
	closed  bool
	entries chan logEntry
	done    chan struct{}
}

// NewBackend returns a stopped backend with the callsite flags taken from
// LOGFLAGS.
func NewBackend() *Backend {
	return newBackend(flagsFromEnv())
}

func newBackend(flag uint32) *Backend {
	return &Backend{
		flag:    flag,
		entries: make(chan logEntry, entriesBuffer),
		done:    make(chan struct{}),
	}
}

// AddLogWriter makes w receive every entry at level or above. Close closes w.
func (b *Backend) AddLogWriter(w io.WriteCloser, level Level) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if b.running || b.closed {
		return errors.New("writers can only be added before the logger runs")
	}
	b.writers = append(b.writers, logWriter{WriteCloser: w, level: level})
	return nil
}

// AddLogFile writes entries at level or above to logFile, rotated as given.
// Missing parent directories are created.
func (b *Backend) AddLogFile(logFile string, level Level, rotation Rotation) error {
	if logDir := filepath.Dir(logFile); logDir != "." {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	r, err := rotator.New(logFile, rotation.ThresholdKB, false, rotation.MaxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	if err := b.AddLogWriter(r, level); err != nil {
		_ = r.Close()
		return err
	}
	return nil
}

// Run starts writing queued entries. A backend runs at most once.
func (b *Backend) Run() error {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if b.running || b.closed {
		return errors.New("the logger was already started")
	}
	b.running = true
	go b.writeLoop()
	return nil
}

func (b *Backend) writeLoop() {
	defer close(b.done)
	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Fatal error in logger.Backend goroutine: %+v\n", err)
			_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
		}
	}()

	for entry := range b.entries {
		for _, w := range b.writers {
			if w.level.Enabled(entry.level) {
				_, _ = w.Write(entry.log)
			}
		}
	}
}

// IsRunning reports whether Run was called and Close was not.
func (b *Backend) IsRunning() bool {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	return b.running
}

// enqueue queues entry for the writers. Entries are dropped unless the
// backend is running.
func (b *Backend) enqueue(entry logEntry) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	if b.running {
		b.entries <- entry
	}
}

// Close writes out every queued entry and closes the writers. Entries logged
// afterwards are dropped. Calling Close more than once is a no-op.
func (b *Backend) Close() {
	b.mtx.Lock()
	if b.closed {
		b.mtx.Unlock()
		return
	}
	wasRunning := b.running
	b.running = false
	b.closed = true
	close(b.entries)
	b.mtx.Unlock()

	if wasRunning {
		<-b.done
	}
	for _, w := range b.writers {
		_ = w.Close()
	}
}

// Logger returns the logger of subsystemTag writing to b. The tag prefixes
// every entry. The logger starts out at LevelOff.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{lvl: LevelOff, tag: subsystemTag, b: b}
}
