// Package utils provides helper functions, including version retrieval.
package utils

import (
	"runtime/debug"
)

const (
	unknownVersion    = "unknown"
	develBuildVersion = "(devel)"
)

// applicationVersion is set at link time:
//
//	go build -ldflags "-X github.com/temirov/listall/internal/utils.applicationVersion=v1.2.3"
var applicationVersion string

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetApplicationVersion reports the version stamped at link time, then the
// module version recorded by "go install", then "unknown". It never inspects
// the working directory, which usually belongs to the project being listed.
func GetApplicationVersion() string {
	if applicationVersion != "" {
		return applicationVersion
	}
	buildInfo, buildInfoAvailable := readBuildInfo()
	if buildInfoAvailable && buildInfo != nil && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
