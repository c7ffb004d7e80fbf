package sorting

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/temirov/listall/internal/types"
)

func TestSortPathsModes(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	names := []string{"file10.txt", "File2.txt", "_notes.md", "file1.txt", "beta", "Alpha", "file02b.txt"}
	paths := make([]string, len(names))
	for index, name := range names {
		paths[index] = filepath.Join(root, name)
	}

	testCases := []struct {
		name     string
		mode     types.SortMode
		expected []string
	}{
		{
			name:     "sequence",
			mode:     types.SortSequence,
			expected: []string{"Alpha", "_notes.md", "beta", "file1.txt", "File2.txt", "file02b.txt", "file10.txt"},
		},
		{
			name:     "isequence",
			mode:     types.SortInsensitiveSequence,
			expected: []string{"_notes.md", "Alpha", "beta", "file1.txt", "file02b.txt", "File2.txt", "file10.txt"},
		},
		{
			name:     "winsequence",
			mode:     types.SortWindowsSequence,
			expected: []string{"_notes.md", "Alpha", "beta", "file02b.txt", "file1.txt", "file10.txt", "File2.txt"},
		},
		{
			name:     "name",
			mode:     types.SortName,
			expected: []string{"Alpha", "File2.txt", "_notes.md", "beta", "file02b.txt", "file1.txt", "file10.txt"},
		},
		{
			name:     "iname",
			mode:     types.SortInsensitiveName,
			expected: []string{"_notes.md", "Alpha", "beta", "file02b.txt", "file1.txt", "file10.txt", "File2.txt"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			sorted := SortPaths(paths, testCase.mode)
			actual := make([]string, len(sorted))
			for index, path := range sorted {
				actual[index] = filepath.Base(path)
			}
			if !reflect.DeepEqual(actual, testCase.expected) {
				t.Fatalf("unexpected order: got %v want %v", actual, testCase.expected)
			}
		})
	}
}

func TestSortIsIdempotent(t *testing.T) {
	originalModificationTime := modificationTime
	t.Cleanup(func() { modificationTime = originalModificationTime })
	stamps := map[string]time.Time{}
	modificationTime = func(path string) time.Time { return stamps[path] }

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"b7", "A7", "a07", "c", "_x", "10", "9", "B"}
	paths := make([]string, len(names))
	for index, name := range names {
		paths[index] = filepath.Join("root", name)
		stamps[paths[index]] = base.Add(time.Duration(len(names)-index%3) * time.Minute)
	}

	for _, mode := range types.SortModes {
		once := SortPaths(paths, mode)
		twice := SortPaths(once, mode)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("mode %s: re-sorting changed order: %v then %v", mode, once, twice)
		}
		namesOnce := SortNames(names, mode)
		namesTwice := SortNames(namesOnce, mode)
		if !reflect.DeepEqual(namesOnce, namesTwice) {
			t.Fatalf("mode %s: re-sorting names changed order: %v then %v", mode, namesOnce, namesTwice)
		}
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	input := []string{"Readme", "README", "readme"}
	sorted := SortNames(input, types.SortInsensitiveName)
	if !reflect.DeepEqual(sorted, input) {
		t.Fatalf("expected ties to keep input order, got %v", sorted)
	}
	sequenced := SortNames([]string{"v1-b", "v01-a"}, types.SortSequence)
	if !reflect.DeepEqual(sequenced, []string{"v01-a", "v1-b"}) {
		t.Fatalf("expected equal numbers to fall back to text, got %v", sequenced)
	}
}

func TestSortPathsByDate(t *testing.T) {
	originalModificationTime := modificationTime
	t.Cleanup(func() { modificationTime = originalModificationTime })
	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	stamps := map[string]time.Time{
		"new":    base.Add(2 * time.Hour),
		"old":    base,
		"middle": base.Add(time.Hour),
		"twin":   base.Add(time.Hour),
	}
	modificationTime = func(path string) time.Time { return stamps[path] }

	sorted := SortPaths([]string{"new", "old", "middle", "twin"}, types.SortDate)
	expected := []string{"old", "middle", "twin", "new"}
	if !reflect.DeepEqual(sorted, expected) {
		t.Fatalf("unexpected date order: got %v want %v", sorted, expected)
	}
}

func TestDateFallsBackToNameForBareNames(t *testing.T) {
	sorted := SortNames([]string{"zeta", "Beta", "alpha"}, types.SortDate)
	expected := []string{"Beta", "alpha", "zeta"}
	if !reflect.DeepEqual(sorted, expected) {
		t.Fatalf("unexpected fallback order: got %v want %v", sorted, expected)
	}
	if Compare(KeyForName("a", types.SortDate), KeyForName("b", types.SortDate)) >= 0 {
		t.Fatalf("expected name comparison for date keys of bare names")
	}
}

func TestLeadingNumberHandlesLargeValues(t *testing.T) {
	huge := "track99999999999999999999999.flac"
	small := "track100.flac"
	sorted := SortNames([]string{huge, small}, types.SortSequence)
	if sorted[0] != small {
		t.Fatalf("expected numeric comparison without overflow, got %v", sorted)
	}
	if leadingNumber("no digits") != "0" || leadingNumber("v000") != "0" || leadingNumber("x007y12") != "7" {
		t.Fatalf("unexpected leading number extraction")
	}
}
