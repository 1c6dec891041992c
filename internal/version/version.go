// Package version describes the running build.
package version

import "fmt"

// Version is the semver of the current build.
var Version = "0.2.1"

// DevVersion is used in dev and demo modes.
var DevVersion = "0.0.0"

func GetCurrentVersion(mode string) string {
	if mode == "prod" {
		return Version
	}
	return DevVersion
}

func GetSemverVersion() string {
	return fmt.Sprintf("v%s", Version)
}
