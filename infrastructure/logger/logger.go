package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// Logger is a subsystem logger for a Backend.
type Logger struct {
	lvl Level // atomic
	tag string
	b   *Backend
}

// Trace formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.Write(LevelTrace, args...)
}

// Tracef formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Writef(LevelTrace, format, args...)
}

// Debug formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.Write(LevelDebug, args...)
}

// Debugf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Writef(LevelDebug, format, args...)
}

// Info formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.Write(LevelInfo, args...)
}

// Infof formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Writef(LevelInfo, format, args...)
}

// Warn formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.Write(LevelWarn, args...)
}

// Warnf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Writef(LevelWarn, format, args...)
}

// Error formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.Write(LevelError, args...)
}

// Errorf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Writef(LevelError, format, args...)
}

// Critical formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.Write(LevelCritical, args...)
}

// Criticalf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.Writef(LevelCritical, format, args...)
}

// Write formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with the given logLevel.
func (l *Logger) Write(logLevel Level, args ...interface{}) {
	if l.Level().Enabled(logLevel) && l.b.IsRunning() {
		buf := l.header(logLevel)
		_, _ = fmt.Fprintln(buf, args...)
		l.b.enqueue(logEntry{buf.Bytes(), logLevel})
	}
}

// Writef formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with the given logLevel.
func (l *Logger) Writef(logLevel Level, format string, args ...interface{}) {
	if l.Level().Enabled(logLevel) && l.b.IsRunning() {
		buf := l.header(logLevel)
		_, _ = fmt.Fprintf(buf, format, args...)
		buf.WriteByte('\n')
		l.b.enqueue(logEntry{buf.Bytes(), logLevel})
	}
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the log backend
func (l *Logger) Backend() *Backend {
	return l.b
}

// normalLogSize covers most entries without growing the buffer.
const normalLogSize = 512

// header starts an entry for lvl with its timestamp and tag, plus the
// callsite when the backend's flags ask for it.
func (l *Logger) header(lvl Level) *bytes.Buffer {
	buf := &bytes.Buffer{}
	buf.Grow(normalLogSize)

	var file string
	var line int
	if l.b.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line = callsite(l.b.flag)
	}
	formatHeader(buf, time.Now(), lvl.String(), l.tag, file, line)
	return buf
}

// formatHeader writes a header in the following format to the buffer:
//   YYYY-MM-DD hh:mm:ss.sss [LVL] TAG: file:line
// file and line are only written when set.
func formatHeader(buf *bytes.Buffer, t time.Time, lvl, tag string, file string, line int) {
	buf.WriteString(t.Format("2006-01-02 15:04:05.000"))
	buf.WriteString(" [")
	buf.WriteString(lvl)
	buf.WriteString("] ")
	buf.WriteString(tag)
	if file != "" {
		buf.WriteByte(' ')
		buf.WriteString(file)
		buf.WriteByte(':')
		fmt.Fprintf(buf, "%d", line)
	}
	buf.WriteString(": ")
}

// calldepth is the call depth of the callsite function relative to the
// caller of the subsystem logger. It is used to recover the filename and line
// number of the logging call if either the short or long file flags are
// specified.
const calldepth = 4

// callsite returns the file name and line number of the callsite to the
// subsystem logger.
func callsite(flag uint32) (string, int) {
	_, file, line, ok := runtime.Caller(calldepth)
	if !ok {
		return "???", 0
	}
	if flag&LogFlagShortFile != 0 {
		file = filepath.Base(file)
	} else if idx := strings.LastIndex(file, string(os.PathSeparator)+"programmingbitcoin"+string(os.PathSeparator)); idx >= 0 {
		file = file[idx+1:]
	}
	return file, line
}
