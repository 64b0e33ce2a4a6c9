// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/go-socks/socks"
	"github.com/huynhtastic/programmingbitcoin/infrastructure/logger"
	"github.com/huynhtastic/programmingbitcoin/version"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultLogLevel     = "info"
	defaultLogDirname   = "logs"
	defaultCacheDirname = "txcache"

	// DefaultConnectTimeout is the default timeout of peer connections and
	// transaction API requests.
	DefaultConnectTimeout = time.Second * 30
)

var (
	// DefaultHomeDir is the default home directory of the tools.
	DefaultHomeDir = btcutil.AppDataDir("programmingbitcoin", false)

	defaultLogDir   = filepath.Join(DefaultHomeDir, defaultLogDirname)
	defaultCacheDir = filepath.Join(DefaultHomeDir, defaultCacheDirname)
)

// CommonFlags holds the options shared by every command line tool.
type CommonFlags struct {
	DebugLevel  string        `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir      string        `long:"logdir" description:"Directory to log output."`
	NoLogFiles  bool          `long:"nologfiles" description:"Log to stderr only"`
	CacheDir    string        `long:"cachedir" description:"Directory of the persistent transaction cache"`
	MemCache    bool          `long:"memcache" description:"Keep fetched transactions in memory only"`
	Proxy       string        `long:"proxy" description:"Connect via SOCKS5 proxy (eg. 127.0.0.1:9050)"`
	ProxyUser   string        `long:"proxyuser" description:"Username for proxy server"`
	ProxyPass   string        `long:"proxypass" default-mask:"-" description:"Password for proxy server"`
	Timeout     time.Duration `long:"timeout" description:"Timeout of network operations"`
	ShowVersion bool          `short:"V" long:"version" description:"Display version information and exit"`
	NetworkFlags
}

// DefaultCommonFlags returns the options with their default values filled in.
func DefaultCommonFlags() CommonFlags {
	return CommonFlags{
		DebugLevel: defaultLogLevel,
		LogDir:     defaultLogDir,
		CacheDir:   defaultCacheDir,
		Timeout:    DefaultConnectTimeout,
	}
}

// ResolveCommonFlags validates the common options after the command line has
// been parsed: it resolves the network, expands the directories and places
// them under the network's name, and checks the proxy address and the debug
// level.
func (commonFlags *CommonFlags) ResolveCommonFlags(parser *flags.Parser) error {
	err := commonFlags.ResolveNetwork(parser)
	if err != nil {
		return err
	}

	netName := commonFlags.NetParams().Name
	commonFlags.LogDir = filepath.Join(cleanAndExpandPath(commonFlags.LogDir), netName)
	commonFlags.CacheDir = filepath.Join(cleanAndExpandPath(commonFlags.CacheDir), netName)

	if commonFlags.Proxy != "" {
		_, _, err := net.SplitHostPort(commonFlags.Proxy)
		if err != nil {
			return errors.Wrapf(err, "proxy address '%s' is invalid", commonFlags.Proxy)
		}
	} else if commonFlags.ProxyUser != "" || commonFlags.ProxyPass != "" {
		return errors.New("proxy credentials given without --proxy")
	}

	if commonFlags.Timeout <= 0 {
		return errors.Errorf("timeout must be positive, got %s", commonFlags.Timeout)
	}

	if commonFlags.DebugLevel == "show" {
		return nil
	}
	return logger.ParseAndSetDebugLevels(commonFlags.DebugLevel)
}

// InitLogging starts the logger backend. Log files named after appName are
// created in LogDir unless NoLogFiles is set. With --version, or when
// DebugLevel is "show", the version or the supported subsystems are printed
// and the process exits.
func (commonFlags *CommonFlags) InitLogging(appName string) {
	if commonFlags.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}
	if commonFlags.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	if commonFlags.NoLogFiles {
		err := logger.BackendLog.AddLogWriter(os.Stderr, logger.LevelInfo)
		if err == nil {
			err = logger.BackendLog.Run()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting the logger: %s\n", err)
			os.Exit(1)
		}
		return
	}

	logger.InitLog(filepath.Join(commonFlags.LogDir, appName+".log"),
		filepath.Join(commonFlags.LogDir, appName+"_err.log"))
}

// SocksProxy returns the SOCKS5 proxy to dial through, or nil when no proxy
// is configured.
func (commonFlags *CommonFlags) SocksProxy() *socks.Proxy {
	if commonFlags.Proxy == "" {
		return nil
	}
	return &socks.Proxy{
		Addr:     commonFlags.Proxy,
		Username: commonFlags.ProxyUser,
		Password: commonFlags.ProxyPass,
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
