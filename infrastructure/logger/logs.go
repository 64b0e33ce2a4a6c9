package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggers     = make(map[string]*Logger)
	subsystemLoggersLock sync.Mutex
)

// RegisterSubSystem returns the logger of the subsystem identified by tag,
// creating it on first use. Loggers start out at LevelOff.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()

	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// traceLogRotation keeps up to 64 rolls of 280 MB, since trace level script
// evaluation fills files fast.
var traceLogRotation = Rotation{ThresholdKB: 280 * 1000, MaxRolls: 64}

// InitLog attaches log file and error log file to the backend log, mirrors
// info and above to stderr so that tool output on stdout stays clean, and
// starts the backend.
func InitLog(logFile, errLogFile string) {
	err := BackendLog.AddLogFile(logFile, LevelTrace, traceLogRotation)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %+v\n", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn, DefaultRotation)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %+v\n", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
	err = BackendLog.AddLogWriter(os.Stderr, LevelInfo)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error adding stderr to the logger for level %s: %+v\n", LevelInfo, err)
		os.Exit(1)
	}
	err = BackendLog.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// SetLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored. Uninitialized subsystems are dynamically created as
// needed.
func SetLogLevel(subsystemID string, logLevel string) {
	level, ok := LevelFromString(logLevel)
	if !ok {
		level = LevelInfo
	}
	RegisterSubSystem(subsystemID).SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level.
func SetLogLevels(logLevel string) {
	subsystemLoggersLock.Lock()
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsystemID := range subsystemLoggers {
		subsystems = append(subsystems, subsystemID)
	}
	subsystemLoggersLock.Unlock()

	for _, subsystemID := range subsystems {
		SetLogLevel(subsystemID, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()

	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

func isSupportedSubsystem(subsystem string) bool {
	subsystemLoggersLock.Lock()
	defer subsystemLoggersLock.Unlock()
	_, exists := subsystemLoggers[subsystem]
	return exists
}

// ParseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid.
func ParseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if _, err := ParseLevel(debugLevel); err != nil {
			return errors.Wrap(err, "invalid debug level")
		}

		// Change the logging level for all subsystems.
		SetLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		// A bare level applies to every subsystem, so "info,PEER=trace"
		// raises PEER above the rest.
		if !strings.Contains(logLevelPair, "=") {
			if _, err := ParseLevel(logLevelPair); err != nil {
				return errors.Wrap(err, "invalid subsystem/level pair")
			}
			SetLogLevels(logLevelPair)
			continue
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if !isSupportedSubsystem(subsysID) {
			str := "The specified subsystem [%s] is invalid -- " +
				"supported subsystems %s"
			return errors.Errorf(str, subsysID, strings.Join(SupportedSubsystems(), ", "))
		}

		if _, err := ParseLevel(logLevel); err != nil {
			return errors.Wrapf(err, "invalid debug level for %s", subsysID)
		}

		SetLogLevel(subsysID, logLevel)
	}

	return nil
}
