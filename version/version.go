// Package version reports the release of the command line tools and the user
// agent they announce to peers.
package version

import (
	"fmt"
	"sync"
)

// AppName is the name announced in the user agent.
const AppName = "programmingbitcoin"

const (
	major = 0
	minor = 1
	patch = 0
)

// appBuild is build metadata stamped by the release build:
//
//	go build -ldflags "-X github.com/huynhtastic/programmingbitcoin/version.appBuild=$(git rev-parse --short HEAD)"
//
// It is dropped unless it is made of ASCII letters, digits and hyphens, the
// characters allowed in a semantic version's build identifiers.
var appBuild string

var (
	versionOnce sync.Once
	version     string
)

// Version returns the semantic version of the tools, with the build metadata
// appended after a hyphen when present, e.g. 0.1.0 or 0.1.0-3f2a9c1.
func Version() string {
	versionOnce.Do(func() {
		version = formatVersion(appBuild)
	})
	return version
}

// UserAgent returns the BIP0014 user agent sent in version messages, e.g.
// /programmingbitcoin:0.1.0/.
func UserAgent() string {
	return fmt.Sprintf("/%s:%s/", AppName, Version())
}

func formatVersion(build string) string {
	v := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if build != "" && isValidBuild(build) {
		v += "-" + build
	}
	return v
}

func isValidBuild(build string) bool {
	for _, r := range build {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
