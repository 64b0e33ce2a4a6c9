package logger

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidLevel is returned by ParseLevel for names that are not a level.
var ErrInvalidLevel = errors.New("invalid log level")

// Level is a severity threshold. A logger set to a level drops entries below
// it, and so does a backend writer.
type Level uint32

// Level constants, from most to least verbose.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
	LevelOff
)

// levelNames holds the tag written in front of every entry and the long
// name accepted on the command line.
var levelNames = [...]struct {
	tag  string
	name string
}{
	LevelTrace:    {"TRC", "trace"},
	LevelDebug:    {"DBG", "debug"},
	LevelInfo:     {"INF", "info"},
	LevelWarn:     {"WRN", "warn"},
	LevelError:    {"ERR", "error"},
	LevelCritical: {"CRT", "critical"},
	LevelOff:      {"OFF", "off"},
}

// LevelFromString accepts a level's long name or its tag in any case, as in
// --debuglevel=trace or --debuglevel=PEER=TRC. Unknown names return LevelInfo
// and false.
func LevelFromString(s string) (Level, bool) {
	for lvl, names := range levelNames {
		if strings.EqualFold(s, names.name) || strings.EqualFold(s, names.tag) {
			return Level(lvl), true
		}
	}
	return LevelInfo, false
}

// ParseLevel is LevelFromString with an ErrInvalidLevel error for unknown
// names.
func ParseLevel(s string) (Level, error) {
	lvl, ok := LevelFromString(s)
	if !ok {
		return LevelInfo, errors.Wrapf(ErrInvalidLevel, "%q", s)
	}
	return lvl, nil
}

// Enabled reports whether an entry logged at entry passes the threshold l.
// Nothing passes LevelOff.
func (l Level) Enabled(entry Level) bool {
	return l < LevelOff && entry >= l
}

// String returns the level's tag, or "OFF" for LevelOff and above.
func (l Level) String() string {
	if l >= LevelOff {
		return levelNames[LevelOff].tag
	}
	return levelNames[l].tag
}
