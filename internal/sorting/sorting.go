// Package sorting derives comparison keys for file and directory names and
// orders paths with them.
package sorting

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/temirov/listall/internal/types"
)

// Key is the comparison key of one path under one sort mode.
type Key struct {
	mode     types.SortMode
	number   string
	text     string
	modified time.Time
}

// modificationTime is replaced in tests that need deterministic timestamps.
var modificationTime = func(path string) time.Time {
	info, statError := os.Stat(path)
	if statError != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// KeyForPath returns the key of a full filesystem path. The date mode reads the
// modification time of the path; a path that cannot be inspected sorts as the
// zero time.
func KeyForPath(path string, mode types.SortMode) Key {
	if mode == types.SortDate {
		return Key{mode: mode, modified: modificationTime(path)}
	}
	return keyForBaseName(filepath.Base(path), mode, cases.Lower(language.Und))
}

// KeyForName returns the key of a bare name with no filesystem location.
// The date mode falls back to plain name ordering.
func KeyForName(name string, mode types.SortMode) Key {
	if mode == types.SortDate {
		mode = types.SortName
	}
	return keyForBaseName(name, mode, cases.Lower(language.Und))
}

func keyForBaseName(baseName string, mode types.SortMode, lowerCaser cases.Caser) Key {
	switch mode {
	case types.SortSequence:
		return Key{mode: mode, number: leadingNumber(baseName), text: baseName}
	case types.SortInsensitiveSequence:
		lowered := lowerCaser.String(baseName)
		return Key{mode: mode, number: leadingNumber(lowered), text: lowered}
	case types.SortWindowsSequence, types.SortInsensitiveName:
		return Key{mode: mode, text: lowerCaser.String(baseName)}
	default:
		return Key{mode: types.SortName, text: baseName}
	}
}

// leadingNumber returns the first run of decimal digits in value without
// leading zeros, or "0" when value has no digits.
func leadingNumber(value string) string {
	start := strings.IndexFunc(value, isDigit)
	if start < 0 {
		return "0"
	}
	end := start
	for end < len(value) && isDigit(rune(value[end])) {
		end++
	}
	digits := strings.TrimLeft(value[start:end], "0")
	if digits == "" {
		return "0"
	}
	return digits
}

func isDigit(character rune) bool {
	return character >= '0' && character <= '9'
}

// compareNumbers compares two digit strings without leading zeros numerically.
func compareNumbers(left, right string) int {
	if len(left) != len(right) {
		if len(left) < len(right) {
			return -1
		}
		return 1
	}
	return strings.Compare(left, right)
}

// Compare orders two keys produced under the same mode.
func Compare(left, right Key) int {
	switch left.mode {
	case types.SortDate:
		return left.modified.Compare(right.modified)
	case types.SortSequence, types.SortInsensitiveSequence:
		if numberOrder := compareNumbers(left.number, right.number); numberOrder != 0 {
			return numberOrder
		}
		return strings.Compare(left.text, right.text)
	default:
		return strings.Compare(left.text, right.text)
	}
}

// SortPaths returns a stably sorted copy of paths. Keys are computed once per
// path, so the date mode inspects every path a single time.
func SortPaths(paths []string, mode types.SortMode) []string {
	lowerCaser := cases.Lower(language.Und)
	return sortWithKeys(paths, func(path string) Key {
		if mode == types.SortDate {
			return KeyForPath(path, mode)
		}
		return keyForBaseName(filepath.Base(path), mode, lowerCaser)
	})
}

// SortNames returns a stably sorted copy of bare names.
func SortNames(names []string, mode types.SortMode) []string {
	return sortWithKeys(names, func(name string) Key {
		return KeyForName(name, mode)
	})
}

type keyedValue struct {
	value string
	key   Key
}

func sortWithKeys(values []string, keyOf func(string) Key) []string {
	keyed := make([]keyedValue, len(values))
	for index, value := range values {
		keyed[index] = keyedValue{value: value, key: keyOf(value)}
	}
	sort.SliceStable(keyed, func(left, right int) bool {
		return Compare(keyed[left].key, keyed[right].key) < 0
	})
	sorted := make([]string, len(keyed))
	for index, entry := range keyed {
		sorted[index] = entry.value
	}
	return sorted
}
