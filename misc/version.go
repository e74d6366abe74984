// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// set by linker
var (
	version = "dev"
	gitHash = "unknown"
	appName = ""
)

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}

// GetAppName returns name of the program, when not set at build time it is
// derived from executable name.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}
