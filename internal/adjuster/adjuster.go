// Package adjuster rewrites a collected listing into the requested path style.
package adjuster

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/listall/internal/decoration"
	"github.com/temirov/listall/internal/types"
)

const crossRootMessageFormat = "cannot create relative path across drives: %s"

// CrossRootError reports a path that lives on a different volume than the
// start directory while strict relative paths are requested.
type CrossRootError struct {
	Path string
}

func (crossRootError *CrossRootError) Error() string {
	return fmt.Sprintf(crossRootMessageFormat, crossRootError.Path)
}

// Request selects how paths are rewritten.
type Request struct {
	PathStyle       types.PathStyle
	Decorations     types.DecorationSet
	StrictCrossRoot bool
	BaseLabel       string
}

// RequestFromOptions extracts the adjustment settings from options.
func RequestFromOptions(options types.Options) Request {
	return Request{
		PathStyle:       options.PathStyle,
		Decorations:     options.Decorations,
		StrictCrossRoot: options.StrictCrossRoot,
		BaseLabel:       options.BaseLabel,
	}
}

// volumeName is replaced in tests to simulate paths on other drives.
var volumeName = filepath.VolumeName

// Adjust returns a new listing with every key and file rewritten relative to
// startAbsolutePath according to request. Key order is preserved.
func Adjust(listing *types.Listing, startAbsolutePath string, request Request) (*types.Listing, error) {
	pathAdjuster := &pathAdjuster{
		startAbsolutePath: filepath.Clean(startAbsolutePath),
		request:           request,
	}
	pathAdjuster.label = request.BaseLabel
	if pathAdjuster.label == "" {
		pathAdjuster.label = filepath.Base(pathAdjuster.startAbsolutePath)
	}

	adjusted := types.NewListing()
	for _, directory := range listing.Directories() {
		files, _ := listing.Files(directory)
		adjustedFiles := make([]string, 0, len(files))
		for _, file := range files {
			adjustedFile, adjustError := pathAdjuster.file(file)
			if adjustError != nil {
				return nil, adjustError
			}
			adjustedFiles = append(adjustedFiles, adjustedFile)
		}

		adjustedKey, adjustError := pathAdjuster.key(directory)
		if adjustError != nil {
			return nil, adjustError
		}
		adjusted.Append(adjustedKey, adjustedFiles...)
	}
	return adjusted, nil
}

type pathAdjuster struct {
	startAbsolutePath string
	request           Request
	label             string
}

func (pathAdjuster *pathAdjuster) file(filePath string) (string, error) {
	switch pathAdjuster.request.PathStyle {
	case types.PathStyleFilesOnly:
		return filepath.Base(filePath), nil
	case types.PathStyleRelative, types.PathStyleRelativeWithBase:
		relativePath, available, relativeError := pathAdjuster.relative(filePath)
		if relativeError != nil || !available {
			return filePath, relativeError
		}
		if pathAdjuster.request.PathStyle == types.PathStyleRelativeWithBase {
			relativePath = filepath.Join(pathAdjuster.label, relativePath)
		}
		return decoration.Apply(relativePath, pathAdjuster.request.Decorations), nil
	default:
		return filePath, nil
	}
}

func (pathAdjuster *pathAdjuster) key(directoryPath string) (string, error) {
	switch pathAdjuster.request.PathStyle {
	case types.PathStyleRelative, types.PathStyleRelativeWithBase:
		relativePath, available, relativeError := pathAdjuster.relative(directoryPath)
		if relativeError != nil || !available {
			return directoryPath, relativeError
		}
		if pathAdjuster.request.PathStyle == types.PathStyleRelativeWithBase {
			if relativePath == "." {
				relativePath = pathAdjuster.label
			} else {
				relativePath = filepath.Join(pathAdjuster.label, relativePath)
			}
		}
		return decoration.Apply(relativePath, pathAdjuster.request.Decorations), nil
	default:
		return directoryPath, nil
	}
}

// relative computes path relative to the start directory. It reports false
// when the path cannot be expressed relatively and strict mode is off, in
// which case the caller keeps the absolute path.
func (pathAdjuster *pathAdjuster) relative(path string) (string, bool, error) {
	if !sameVolume(path, pathAdjuster.startAbsolutePath) {
		if pathAdjuster.request.StrictCrossRoot {
			return "", false, &CrossRootError{Path: path}
		}
		return "", false, nil
	}
	relativePath, relativeError := filepath.Rel(pathAdjuster.startAbsolutePath, path)
	if relativeError != nil {
		if pathAdjuster.request.StrictCrossRoot {
			return "", false, &CrossRootError{Path: path}
		}
		return "", false, nil
	}
	return relativePath, true, nil
}

func sameVolume(left, right string) bool {
	return strings.EqualFold(volumeName(left), volumeName(right))
}
