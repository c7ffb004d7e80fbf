// Package config loads configuration files and ignore files into listing options.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/listall/internal/utils"
)

const (
	commentPrefix              = "#"
	loadIgnoreFileErrorFormat  = "loading %s from %s: %w"
	closeIgnoreFileWarningText = "failed to close ignore file"
)

// LoadIgnoreFilePatterns reads basename exclusion patterns from ignoreFilePath,
// one per line. Blank lines and lines starting with # are skipped. A missing
// file yields no patterns.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string, logger *zap.Logger) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && logger != nil {
			logger.Warn(closeIgnoreFileWarningText, zap.String("path", ignoreFilePath), zap.Error(closeError))
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// LoadCombinedIgnorePatterns returns exclusionPatterns extended with the
// patterns of the ignore file at the root of absoluteDirectoryPath when
// useIgnoreFile is set. The result holds no blanks or duplicates.
func LoadCombinedIgnorePatterns(absoluteDirectoryPath string, exclusionPatterns []string, useIgnoreFile bool, logger *zap.Logger) ([]string, error) {
	combinedPatterns := utils.DeduplicatePatterns(exclusionPatterns)
	if !useIgnoreFile {
		return combinedPatterns, nil
	}

	ignoreFilePath := filepath.Join(absoluteDirectoryPath, utils.IgnoreFileName)
	ignoreFilePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath, logger)
	if loadError != nil {
		return nil, fmt.Errorf(loadIgnoreFileErrorFormat, utils.IgnoreFileName, absoluteDirectoryPath, loadError)
	}
	for _, pattern := range utils.DeduplicatePatterns(ignoreFilePatterns) {
		if !utils.ContainsString(combinedPatterns, pattern) {
			combinedPatterns = append(combinedPatterns, pattern)
		}
	}
	return combinedPatterns, nil
}
