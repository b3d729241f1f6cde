package core

import "strings"

const modulePath = "resumidor/core"

// Version is the application version, set at build time via ldflags:
//
//	go build -ldflags "-X resumidor/core.Version=$(git describe --tags --always)" .
//
// Defaults to "dev".
var Version = "dev"

// BuildTime is the build timestamp, injected the same way as Version.
var BuildTime = "unknown"

// GitCommit is the short commit hash, injected the same way as Version.
var GitCommit = "unknown"

// GetVersionInfo returns the string printed by `resumidor --version`.
//
// Examples:
//   - "v1.0.0 (built 2024-01-15T10:30:00Z, commit abc1234)"
//   - "dev (built unknown, commit unknown)"
func GetVersionInfo() string {
	return Version + " (built " + BuildTime + ", commit " + GitCommit + ")"
}

// BuildLdflags returns the ldflags string for injecting version information.
// Empty arguments are left out.
func BuildLdflags(version, buildTime, gitCommit string) string {
	var flags []string
	add := func(name, value string) {
		if value != "" {
			flags = append(flags, "-X "+modulePath+"."+name+"="+value)
		}
	}
	add("Version", version)
	add("BuildTime", buildTime)
	add("GitCommit", gitCommit)
	return strings.Join(flags, " ")
}
