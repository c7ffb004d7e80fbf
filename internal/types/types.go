// Package types defines every cross-package data structure used by the listall CLI.
package types

// SortMode selects the ordering of files and directories.
type SortMode string

// CollectStrategy selects which files are retained per directory.
type CollectStrategy string

// PathStyle selects how a resulting path string is expressed.
type PathStyle string

// OutputFormat selects flat or nested rendering.
type OutputFormat string

// Decoration is a post-hoc transform applied to a rendered path.
type Decoration string

// OutputTarget names a destination for the rendered text.
type OutputTarget string

const (
	SortSequence            SortMode = "sequence"
	SortInsensitiveSequence SortMode = "isequence"
	SortWindowsSequence     SortMode = "winsequence"
	SortName                SortMode = "name"
	SortInsensitiveName     SortMode = "iname"
	SortDate                SortMode = "date"

	CollectAll             CollectStrategy = "all"
	CollectDirectoriesOnly CollectStrategy = "dirs-only"
	CollectFirstLastFile   CollectStrategy = "dirs-1st-last-file"
	CollectFilesOnly       CollectStrategy = "files-only"

	PathStyleFull             PathStyle = "full"
	PathStyleRelative         PathStyle = "rel"
	PathStyleRelativeWithBase PathStyle = "rel-base"
	PathStyleFilesOnly        PathStyle = "files-only"

	FormatInline  OutputFormat = "inline"
	FormatSummary OutputFormat = "summary"

	DecorationUnix           Decoration = "unix"
	DecorationWindows        Decoration = "windows"
	DecorationRelativeLeader Decoration = "rel-leader"
	DecorationNoLeader       Decoration = "no-leader"

	OutputClipboard OutputTarget = "clip"
	OutputStdout    OutputTarget = "stdout"
	OutputFile      OutputTarget = "file"
	OutputAll       OutputTarget = "all"

	// DefaultIndentWidth is the number of spaces per nesting level in summary output.
	DefaultIndentWidth = 2
)

var (
	SortModes         = []SortMode{SortSequence, SortInsensitiveSequence, SortWindowsSequence, SortName, SortInsensitiveName, SortDate}
	CollectStrategies = []CollectStrategy{CollectAll, CollectDirectoriesOnly, CollectFirstLastFile, CollectFilesOnly}
	PathStyles        = []PathStyle{PathStyleFull, PathStyleRelative, PathStyleRelativeWithBase, PathStyleFilesOnly}
	OutputFormats     = []OutputFormat{FormatInline, FormatSummary}
	Decorations       = []Decoration{DecorationUnix, DecorationWindows, DecorationRelativeLeader, DecorationNoLeader}
	OutputTargets     = []OutputTarget{OutputClipboard, OutputStdout, OutputFile, OutputAll}
)

// DecorationSet is an unordered combination of decorations.
type DecorationSet map[Decoration]struct{}

// NewDecorationSet builds a set from the provided decorations.
func NewDecorationSet(decorations ...Decoration) DecorationSet {
	set := make(DecorationSet, len(decorations))
	for _, decoration := range decorations {
		set[decoration] = struct{}{}
	}
	return set
}

// Has reports whether decoration is part of the set.
func (set DecorationSet) Has(decoration Decoration) bool {
	_, present := set[decoration]
	return present
}

// Options is the validated configuration of one invocation. It is read-only
// once constructed. Nil limit pointers mean the limit is not set.
type Options struct {
	Sort                SortMode
	Collect             CollectStrategy
	PathStyle           PathStyle
	Format              OutputFormat
	Decorations         DecorationSet
	ExclusionPatterns   []string
	MaxDepth            *int
	PruneThreshold      *int
	CollectLimit        *int
	CollectLimitMinimum *int
	StrictCrossRoot     bool
	BaseLabel           string
	IndentWidth         int
	CompactBraces       bool
	UseIgnoreFile       bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Sort:        SortInsensitiveName,
		Collect:     CollectAll,
		PathStyle:   PathStyleRelativeWithBase,
		Format:      FormatInline,
		Decorations: NewDecorationSet(),
		IndentWidth: DefaultIndentWidth,
	}
}

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}
