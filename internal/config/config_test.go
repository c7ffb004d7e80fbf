package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/listall/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadIgnoreFilePatterns verifies that comments and blank lines are skipped.
func TestLoadIgnoreFilePatterns(testingHandle *testing.T) {
	ignoreFilePath := filepath.Join(testingHandle.TempDir(), utils.IgnoreFileName)
	writeTestFile(testingHandle, ignoreFilePath, "# build output\n*.log\n\n  dist  \n#*.tmp\n")

	patterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath, nil)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnoreFilePatterns failed: %v", loadError)
	}
	expected := []string{"*.log", "dist"}
	if !reflect.DeepEqual(patterns, expected) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", patterns, expected)
	}
}

// TestLoadIgnoreFilePatternsMissingFile verifies that a missing file is not an error.
func TestLoadIgnoreFilePatternsMissingFile(testingHandle *testing.T) {
	patterns, loadError := LoadIgnoreFilePatterns(filepath.Join(testingHandle.TempDir(), utils.IgnoreFileName), nil)
	if loadError != nil || patterns != nil {
		testingHandle.Fatalf("expected no patterns and no error, got %v, %v", patterns, loadError)
	}
}

// TestLoadCombinedIgnorePatterns verifies merging of explicit and ignore file patterns.
func TestLoadCombinedIgnorePatterns(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.IgnoreFileName), "*.tmp\nbuild\n")

	testCases := []struct {
		testName          string
		exclusionPatterns []string
		useIgnoreFile     bool
		expected          []string
	}{
		{
			testName:          "ignore file disabled",
			exclusionPatterns: []string{"*.tmp", " ", "*.tmp"},
			useIgnoreFile:     false,
			expected:          []string{"*.tmp"},
		},
		{
			testName:          "ignore file appended without duplicates",
			exclusionPatterns: []string{"*.tmp", "vendor"},
			useIgnoreFile:     true,
			expected:          []string{"*.tmp", "vendor", "build"},
		},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.testName, func(testingHandle *testing.T) {
			patterns, loadError := LoadCombinedIgnorePatterns(rootDirectory, testCase.exclusionPatterns, testCase.useIgnoreFile, nil)
			if loadError != nil {
				testingHandle.Fatalf("LoadCombinedIgnorePatterns failed: %v", loadError)
			}
			if !reflect.DeepEqual(patterns, testCase.expected) {
				testingHandle.Fatalf("unexpected patterns: got %v want %v", patterns, testCase.expected)
			}
		})
	}
}

// TestLoadCombinedIgnorePatternsUnreadable verifies that an ignore path that cannot be read is reported.
func TestLoadCombinedIgnorePatternsUnreadable(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	if makeDirError := os.Mkdir(filepath.Join(rootDirectory, utils.IgnoreFileName), 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create directory: %v", makeDirError)
	}
	if _, loadError := LoadCombinedIgnorePatterns(rootDirectory, nil, true, nil); loadError == nil {
		testingHandle.Fatalf("expected an error when the ignore path is a directory")
	}
}
