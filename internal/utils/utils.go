// Package utils contains general helper functions used across the listall tool.
package utils

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/danwakefield/fnmatch"
)

// Ignore file constants used across the project.
const (
	// IgnoreFileName is the name of the per-directory exclusion file.
	IgnoreFileName = ".ignore"
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".listall.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".listall"
	// GlobalConfigFileName is the name of the global configuration file.
	GlobalConfigFileName = "config.yaml"
)

const windowsOperatingSystem = "windows"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept. Blank patterns are dropped.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[trimmedPattern]; !exists {
			encounteredPatterns[trimmedPattern] = struct{}{}
			result = append(result, trimmedPattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// MatchesAnyPattern reports whether the basename of path matches one of the
// shell-style patterns. Matching is case-insensitive on Windows, where file
// names are.
func MatchesAnyPattern(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	baseName := filepath.Base(path)
	flags := 0
	if runtime.GOOS == windowsOperatingSystem {
		flags = fnmatch.FNM_CASEFOLD
	}
	for _, pattern := range patterns {
		if fnmatch.Match(pattern, baseName, flags) {
			return true
		}
	}
	return false
}
