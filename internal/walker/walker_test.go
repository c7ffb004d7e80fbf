package walker

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/listall/internal/types"
)

func intPointer(value int) *int {
	return &value
}

func writeFixture(testingHandle *testing.T, root string, relativePaths ...string) {
	testingHandle.Helper()
	for _, relativePath := range relativePaths {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if strings.HasSuffix(relativePath, "/") {
			if makeError := os.MkdirAll(fullPath, 0o755); makeError != nil {
				testingHandle.Fatalf("mkdir %s: %v", fullPath, makeError)
			}
			continue
		}
		if makeError := os.MkdirAll(filepath.Dir(fullPath), 0o755); makeError != nil {
			testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(fullPath), makeError)
		}
		if writeError := os.WriteFile(fullPath, []byte(relativePath), 0o644); writeError != nil {
			testingHandle.Fatalf("write %s: %v", fullPath, writeError)
		}
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for index, path := range paths {
		names[index] = filepath.Base(path)
	}
	return names
}

func TestDecide(testingHandle *testing.T) {
	testCases := []struct {
		name           string
		depth          int
		fileCount      int
		maxDepth       *int
		pruneThreshold *int
		expected       Decision
	}{
		{name: "unbounded", depth: 7, fileCount: 100, expected: Descend},
		{name: "depth reached", depth: 1, fileCount: 0, maxDepth: intPointer(1), expected: Skip},
		{name: "depth reached wins over pruning", depth: 2, fileCount: 9, maxDepth: intPointer(1), pruneThreshold: intPointer(3), expected: Skip},
		{name: "threshold reached", depth: 0, fileCount: 3, pruneThreshold: intPointer(3), expected: Partial},
		{name: "below threshold", depth: 0, fileCount: 2, pruneThreshold: intPointer(3), expected: Descend},
		{name: "zero depth limit skips root", depth: 0, fileCount: 0, maxDepth: intPointer(0), expected: Skip},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			actual := Decide(testCase.depth, testCase.fileCount, testCase.maxDepth, testCase.pruneThreshold)
			if actual != testCase.expected {
				testingHandle.Fatalf("expected %s, got %s", testCase.expected, actual)
			}
		})
	}
}

func TestWalkCollectsInVisitOrder(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeFixture(testingHandle, root,
		"b.txt", "a.txt",
		"src/main.go", "src/util/helpers.go",
		"docs/guide.md",
		"empty/",
	)

	options := types.DefaultOptions()
	listing := Walk(root, options, nil)

	expectedDirectories := []string{
		root,
		filepath.Join(root, "docs"),
		filepath.Join(root, "empty"),
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "util"),
	}
	if !reflect.DeepEqual(listing.Directories(), expectedDirectories) {
		testingHandle.Fatalf("unexpected directories: got %v want %v", listing.Directories(), expectedDirectories)
	}
	rootFiles, _ := listing.Files(root)
	if !reflect.DeepEqual(baseNames(rootFiles), []string{"a.txt", "b.txt"}) {
		testingHandle.Fatalf("unexpected root files: %v", rootFiles)
	}
	emptyFiles, recorded := listing.Files(filepath.Join(root, "empty"))
	if !recorded || len(emptyFiles) != 0 {
		testingHandle.Fatalf("expected empty directory recorded without files, got %v (%t)", emptyFiles, recorded)
	}
}

func TestWalkPrunesLargeDirectories(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeFixture(testingHandle, root,
		"f1.txt", "f2.txt", "f3.txt", "f4.txt", "f5.txt",
		"nested/inner.txt",
	)

	options := types.DefaultOptions()
	options.PruneThreshold = intPointer(3)
	listing := Walk(root, options, nil)

	rootFiles, _ := listing.Files(root)
	if !reflect.DeepEqual(baseNames(rootFiles), []string{"f1.txt", "f5.txt"}) {
		testingHandle.Fatalf("expected first and last file, got %v", baseNames(rootFiles))
	}
	if _, visited := listing.Files(filepath.Join(root, "nested")); visited {
		testingHandle.Fatalf("pruned directory must not be descended")
	}
	if listing.Len() != 1 {
		testingHandle.Fatalf("expected only the root, got %v", listing.Directories())
	}
}

func TestWalkLogsLimitedDirectories(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeFixture(testingHandle, root, "f1.txt", "f2.txt", "f3.txt", "nested/inner.txt")
	core, recorded := observer.New(zapcore.DebugLevel)

	options := types.DefaultOptions()
	options.PruneThreshold = intPointer(3)
	Walk(root, options, zap.New(core))

	entries := recorded.FilterMessage(limitedDirectoryMessage).All()
	if len(entries) != 1 {
		testingHandle.Fatalf("expected one limited directory entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["decision"] != Partial.String() || fields["path"] != root {
		testingHandle.Fatalf("unexpected log fields: %v", fields)
	}
}

func TestWalkHonorsMaxDepth(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeFixture(testingHandle, root, "top.txt", "one/one.txt", "one/two/two.txt")

	options := types.DefaultOptions()
	options.MaxDepth = intPointer(1)
	listing := Walk(root, options, nil)

	expected := []string{root, filepath.Join(root, "one")}
	if !reflect.DeepEqual(listing.Directories(), expected) {
		testingHandle.Fatalf("unexpected directories: got %v want %v", listing.Directories(), expected)
	}
	oneFiles, _ := listing.Files(filepath.Join(root, "one"))
	if !reflect.DeepEqual(baseNames(oneFiles), []string{"one.txt"}) {
		testingHandle.Fatalf("directory at the depth limit keeps its files, got %v", oneFiles)
	}
}

func TestWalkExcludesMatchingEntries(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeFixture(testingHandle, root, "keep.go", "scratch.tmp", "cache.tmp/inside.go", "node_modules/lib.js")

	options := types.DefaultOptions()
	options.ExclusionPatterns = []string{"*.tmp", "node_modules"}
	listing := Walk(root, options, nil)

	if !reflect.DeepEqual(listing.Directories(), []string{root}) {
		testingHandle.Fatalf("excluded directories must not be visited, got %v", listing.Directories())
	}
	rootFiles, _ := listing.Files(root)
	if !reflect.DeepEqual(baseNames(rootFiles), []string{"keep.go"}) {
		testingHandle.Fatalf("unexpected files: %v", rootFiles)
	}
}

func TestWalkCollectStrategies(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeFixture(testingHandle, root, "a.txt", "b.txt", "c.txt", "sub/only.txt")

	testCases := []struct {
		name              string
		collect           types.CollectStrategy
		expectedRootFiles []string
	}{
		{name: "all", collect: types.CollectAll, expectedRootFiles: []string{"a.txt", "b.txt", "c.txt"}},
		{name: "directories only", collect: types.CollectDirectoriesOnly, expectedRootFiles: []string{}},
		{name: "first and last", collect: types.CollectFirstLastFile, expectedRootFiles: []string{"a.txt", "c.txt"}},
		{name: "files only", collect: types.CollectFilesOnly, expectedRootFiles: []string{"a.txt", "b.txt", "c.txt"}},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			options := types.DefaultOptions()
			options.Collect = testCase.collect
			listing := Walk(root, options, nil)

			if listing.Len() != 2 {
				testingHandle.Fatalf("expected both directories recorded, got %v", listing.Directories())
			}
			rootFiles, _ := listing.Files(root)
			if !reflect.DeepEqual(baseNames(rootFiles), testCase.expectedRootFiles) {
				testingHandle.Fatalf("unexpected root files: got %v want %v", baseNames(rootFiles), testCase.expectedRootFiles)
			}
		})
	}
}

func TestWalkAbandonsUnreadableDirectories(testingHandle *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for this user")
	}
	root := testingHandle.TempDir()
	writeFixture(testingHandle, root, "visible.txt", "locked/secret.txt", "open/public.txt")
	lockedPath := filepath.Join(root, "locked")
	if chmodError := os.Chmod(lockedPath, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedPath, 0o755) })

	listing := Walk(root, types.DefaultOptions(), nil)

	expected := []string{root, filepath.Join(root, "open")}
	if !reflect.DeepEqual(listing.Directories(), expected) {
		testingHandle.Fatalf("unexpected directories: got %v want %v", listing.Directories(), expected)
	}
}

func TestWalkMissingStartYieldsEmptyListing(testingHandle *testing.T) {
	listing := Walk(filepath.Join(testingHandle.TempDir(), "absent"), types.DefaultOptions(), nil)
	if listing.Len() != 0 {
		testingHandle.Fatalf("expected empty listing, got %v", listing.Directories())
	}
}

func TestWalkStopsAtSymlinkCycles(testingHandle *testing.T) {
	root := testingHandle.TempDir()
	writeFixture(testingHandle, root, "loop/file.txt")
	if linkError := os.Symlink(root, filepath.Join(root, "loop", "back")); linkError != nil {
		testingHandle.Skipf("symlinks unavailable: %v", linkError)
	}

	listing := Walk(root, types.DefaultOptions(), nil)

	expected := []string{root, filepath.Join(root, "loop")}
	if !reflect.DeepEqual(listing.Directories(), expected) {
		testingHandle.Fatalf("unexpected directories: got %v want %v", listing.Directories(), expected)
	}
}

func TestTruncate(testingHandle *testing.T) {
	names := []string{"f01", "f02", "f03", "f04", "f05", "f06", "f07", "f08", "f09", "f10"}

	testCases := []struct {
		name     string
		collect  types.CollectStrategy
		limit    *int
		minimum  *int
		expected []string
	}{
		{
			name:     "keeps first and last halves of the minimum",
			collect:  types.CollectAll,
			limit:    intPointer(5),
			minimum:  intPointer(4),
			expected: []string{"f01", "f02", "f09", "f10"},
		},
		{
			name:     "missing minimum keeps one at each end",
			collect:  types.CollectAll,
			limit:    intPointer(5),
			expected: []string{"f01", "f10"},
		},
		{
			name:     "odd minimum rounds down",
			collect:  types.CollectAll,
			limit:    intPointer(5),
			minimum:  intPointer(7),
			expected: []string{"f01", "f02", "f03", "f08", "f09", "f10"},
		},
		{
			name:     "list within limit untouched",
			collect:  types.CollectAll,
			limit:    intPointer(10),
			minimum:  intPointer(4),
			expected: names,
		},
		{
			name:     "minimum covering the list leaves it unchanged",
			collect:  types.CollectAll,
			limit:    intPointer(3),
			minimum:  intPointer(20),
			expected: names,
		},
		{
			name:     "zero limit disables truncation",
			collect:  types.CollectAll,
			limit:    intPointer(0),
			minimum:  intPointer(4),
			expected: names,
		},
		{
			name:     "other strategies are ignored",
			collect:  types.CollectFilesOnly,
			limit:    intPointer(5),
			minimum:  intPointer(4),
			expected: names,
		},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(testingHandle *testing.T) {
			listing := types.NewListing()
			listing.Set("root", names)
			options := types.DefaultOptions()
			options.Collect = testCase.collect
			options.CollectLimit = testCase.limit
			options.CollectLimitMinimum = testCase.minimum

			Truncate(listing, options)

			actual, _ := listing.Files("root")
			if !reflect.DeepEqual(actual, testCase.expected) {
				testingHandle.Fatalf("unexpected files: got %v want %v", actual, testCase.expected)
			}
		})
	}
}
