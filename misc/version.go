// Package misc keeps small helpers needed across the program.
package misc

import (
	"runtime/debug"
)

const appName = "cssp"

// GetAppName returns program name to be used in reporting, logging, etc.
func GetAppName() string {
	return appName
}

// GetVersion returns program version from build information.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns git revision the program was built from.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
