// Package walker performs the depth-first directory walk that produces the
// flat directory-to-files listing.
package walker

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/listall/internal/sorting"
	"github.com/temirov/listall/internal/types"
	"github.com/temirov/listall/internal/utils"
)

const (
	// abandonedDirectoryMessage is logged when a directory cannot be listed.
	abandonedDirectoryMessage = "skipping unreadable directory"
	// revisitedDirectoryMessage is logged when a symlink leads back to a visited directory.
	revisitedDirectoryMessage = "skipping already visited directory"
	// limitedDirectoryMessage is logged when depth or pruning limits stop the descent.
	limitedDirectoryMessage   = "not descending into directory"
)

// Decision describes how a directory is treated once its entries are known.
type Decision int

const (
	// Descend records the directory and visits its subdirectories.
	Descend Decision = iota
	// Skip records the directory but does not visit its subdirectories.
	Skip
	// Partial records only the first and last file and does not descend.
	Partial
)

func (decision Decision) String() string {
	switch decision {
	case Skip:
		return "skip"
	case Partial:
		return "partial"
	default:
		return "descend"
	}
}

// Decide derives the visit decision from the current depth and file count.
func Decide(depth int, fileCount int, maxDepth *int, pruneThreshold *int) Decision {
	if maxDepth != nil && depth >= *maxDepth {
		return Skip
	}
	if pruneThreshold != nil && fileCount >= *pruneThreshold {
		return Partial
	}
	return Descend
}

// Walker walks a directory tree according to Options.
type Walker struct {
	Options types.Options
	Logger  *zap.Logger

	listing *types.Listing
	visited map[string]struct{}
}

// New returns a Walker for options. A nil logger discards messages.
func New(options types.Options, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{Options: options, Logger: logger}
}

// Walk runs a single walk from startAbsolutePath with a fresh Walker.
func Walk(startAbsolutePath string, options types.Options, logger *zap.Logger) *types.Listing {
	return New(options, logger).Walk(startAbsolutePath)
}

// Walk visits startAbsolutePath and its descendants and returns the collected
// listing keyed by absolute directory path in visit order. Unreadable
// directories are abandoned without error.
func (walker *Walker) Walk(startAbsolutePath string) *types.Listing {
	if walker.Logger == nil {
		walker.Logger = zap.NewNop()
	}
	walker.listing = types.NewListing()
	walker.visited = make(map[string]struct{})
	defer func() {
		walker.visited = nil
	}()
	walker.visit(filepath.Clean(startAbsolutePath), 0)
	listing := walker.listing
	walker.listing = nil
	return listing
}

func (walker *Walker) visit(directoryPath string, depth int) {
	if !walker.markVisited(directoryPath) {
		walker.Logger.Debug(revisitedDirectoryMessage, zap.String("path", directoryPath))
		return
	}

	subdirectories, files, listError := walker.readEntries(directoryPath)
	if listError != nil {
		walker.Logger.Debug(abandonedDirectoryMessage, zap.String("path", directoryPath), zap.Error(listError))
		return
	}
	subdirectories = sorting.SortPaths(subdirectories, walker.Options.Sort)
	files = sorting.SortPaths(files, walker.Options.Sort)

	decision := Decide(depth, len(files), walker.Options.MaxDepth, walker.Options.PruneThreshold)
	walker.listing.Record(directoryPath)
	if decision != Descend {
		walker.Logger.Debug(limitedDirectoryMessage,
			zap.String("path", directoryPath),
			zap.Stringer("decision", decision),
			zap.Int("depth", depth),
			zap.Int("files", len(files)),
		)
	}

	if decision == Partial {
		files = firstAndLast(files)
		subdirectories = nil
	}

	switch walker.Options.Collect {
	case types.CollectDirectoriesOnly:
	case types.CollectFirstLastFile:
		walker.listing.Set(directoryPath, firstAndLast(files))
	case types.CollectFilesOnly:
		walker.listing.Append(directoryPath, files...)
	default:
		walker.listing.Set(directoryPath, files)
	}

	if decision == Skip {
		return
	}
	for _, subdirectory := range subdirectories {
		walker.visit(subdirectory, depth+1)
	}
}

// readEntries lists directoryPath in operating system enumeration order and
// splits the children into subdirectories and files, dropping excluded names.
func (walker *Walker) readEntries(directoryPath string) ([]string, []string, error) {
	directoryHandle, openError := os.Open(directoryPath)
	if openError != nil {
		return nil, nil, openError
	}
	defer directoryHandle.Close()

	directoryEntries, readError := directoryHandle.ReadDir(-1)
	if readError != nil {
		return nil, nil, readError
	}

	var subdirectories []string
	var files []string
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		if utils.MatchesAnyPattern(childPath, walker.Options.ExclusionPatterns) {
			continue
		}
		if isDirectory(childPath, directoryEntry) {
			subdirectories = append(subdirectories, childPath)
		} else {
			files = append(files, childPath)
		}
	}
	return subdirectories, files, nil
}

// isDirectory classifies an entry, following symbolic links to their target.
func isDirectory(childPath string, directoryEntry os.DirEntry) bool {
	if directoryEntry.Type()&os.ModeSymlink == 0 {
		return directoryEntry.IsDir()
	}
	targetInfo, statError := os.Stat(childPath)
	if statError != nil {
		return false
	}
	return targetInfo.IsDir()
}

// markVisited reports whether the physical directory behind directoryPath is
// seen for the first time in this walk.
func (walker *Walker) markVisited(directoryPath string) bool {
	physicalPath, resolveError := filepath.EvalSymlinks(directoryPath)
	if resolveError != nil {
		physicalPath = directoryPath
	}
	if _, seen := walker.visited[physicalPath]; seen {
		return false
	}
	walker.visited[physicalPath] = struct{}{}
	return true
}

func firstAndLast(files []string) []string {
	if len(files) > 1 {
		return []string{files[0], files[len(files)-1]}
	}
	return files
}
