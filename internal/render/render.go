// Package render turns an adjusted listing into text.
package render

import (
	"path/filepath"
	"strings"

	"github.com/temirov/listall/internal/decoration"
	"github.com/temirov/listall/internal/sorting"
	"github.com/temirov/listall/internal/tree"
	"github.com/temirov/listall/internal/types"
)

const (
	lineSeparator     = "\n"
	openBrace         = "{"
	closeBrace        = "}"
	labeledOpenSuffix = ":{"
	blockHeaderPrefix = "=== Listing for: "
	blockHeaderSuffix = " ==="
)

// Block is the rendered listing of one start directory.
type Block struct {
	StartPath string
	Text      string
}

// Render formats listing in the output format selected by options.
func Render(listing *types.Listing, options types.Options) string {
	if options.Format == types.FormatSummary {
		return renderSummary(listing, options)
	}
	return renderInline(listing, options)
}

// RenderBlocks joins per start directory blocks. A single block is returned
// unchanged; several blocks are each preceded by a header naming the start
// directory and followed by an empty line.
func RenderBlocks(blocks []Block) string {
	if len(blocks) == 1 {
		return blocks[0].Text
	}
	parts := make([]string, 0, 3*len(blocks))
	for _, block := range blocks {
		parts = append(parts, blockHeaderPrefix+block.StartPath+blockHeaderSuffix, block.Text, "")
	}
	return strings.Join(parts, lineSeparator)
}

func renderInline(listing *types.Listing, options types.Options) string {
	var lines []string
	for _, directory := range listing.Directories() {
		if options.Collect == types.CollectDirectoriesOnly {
			lines = append(lines, decoration.Apply(directory, options.Decorations))
			continue
		}
		files, _ := listing.Files(directory)
		for _, file := range files {
			lines = append(lines, decoration.Apply(file, options.Decorations))
		}
	}
	return strings.Join(lines, lineSeparator)
}

type summaryRenderer struct {
	listing     *types.Listing
	options     types.Options
	indentWidth int
	lines       []string
	// keysByPath maps the path of a tree node back to its listing key, which
	// may carry a trailing separator such as "./".
	keysByPath map[string]string
}

func renderSummary(listing *types.Listing, options types.Options) string {
	renderer := &summaryRenderer{
		listing:     listing,
		options:     options,
		indentWidth: options.IndentWidth,
		keysByPath:  make(map[string]string, listing.Len()),
	}
	for _, key := range listing.Directories() {
		renderer.keysByPath[nodePath(key)] = key
	}
	if renderer.indentWidth < 0 {
		renderer.indentWidth = 0
	}
	renderer.renderChildren(tree.Build(listing.Directories()), "", 0)
	return strings.Join(renderer.lines, lineSeparator)
}

// nodePath rebuilds key from its tree segments.
func nodePath(key string) string {
	path := ""
	for _, segment := range tree.Segments(key) {
		path = tree.Join(path, segment)
	}
	return path
}

func (renderer *summaryRenderer) files(fullPath string) []string {
	key, found := renderer.keysByPath[fullPath]
	if !found {
		key = fullPath
	}
	files, _ := renderer.listing.Files(key)
	return files
}

// sortedChildren orders the children of node by their names under the
// configured sort mode.
func (renderer *summaryRenderer) sortedChildren(node *tree.Node) []*tree.Node {
	children := node.Children()
	names := make([]string, len(children))
	for index, child := range children {
		names[index] = child.Name
	}
	sortedChildren := make([]*tree.Node, 0, len(children))
	for _, name := range sorting.SortNames(names, renderer.options.Sort) {
		child, _ := node.Lookup(name)
		sortedChildren = append(sortedChildren, child)
	}
	return sortedChildren
}

func (renderer *summaryRenderer) renderChildren(node *tree.Node, currentPath string, level int) {
	indent := strings.Repeat(" ", renderer.indentWidth*level)
	fileIndent := indent + strings.Repeat(" ", renderer.indentWidth)
	children := renderer.sortedChildren(node)
	for index, child := range children {
		isLast := index == len(children)-1
		fullPath := tree.Join(currentPath, child.Name)
		display := decoration.Apply(child.Name, renderer.options.Decorations)
		files := renderer.files(fullPath)

		switch renderer.options.Collect {
		case types.CollectDirectoriesOnly:
			if !child.HasChildren() {
				renderer.lines = append(renderer.lines, indent+display)
				continue
			}
			renderer.lines = append(renderer.lines, indent+display+labeledOpenSuffix)
			renderer.renderChildren(child, fullPath, level+1)
			renderer.close(indent, isLast)

		case types.CollectFilesOnly:
			renderer.lines = append(renderer.lines, indent+openBrace)
			renderer.appendFiles(fileIndent, files)
			renderer.renderChildren(child, fullPath, level+1)
			renderer.close(indent, isLast)

		case types.CollectFirstLastFile:
			braced := child.HasChildren() || level > 0
			if braced {
				renderer.lines = append(renderer.lines, indent+display+labeledOpenSuffix)
			} else {
				renderer.lines = append(renderer.lines, indent+display)
			}
			if len(files) > 0 {
				renderer.appendFiles(fileIndent, []string{files[0]})
				if len(files) > 1 {
					renderer.appendFiles(fileIndent, []string{files[len(files)-1]})
				}
			}
			renderer.renderChildren(child, fullPath, level+1)
			if braced {
				renderer.close(indent, isLast)
			}

		default:
			renderer.lines = append(renderer.lines, indent+display+labeledOpenSuffix)
			renderer.appendFiles(fileIndent, files)
			renderer.renderChildren(child, fullPath, level+1)
			renderer.close(indent, isLast)
		}
	}
}

func (renderer *summaryRenderer) appendFiles(fileIndent string, files []string) {
	for _, file := range files {
		renderer.lines = append(renderer.lines, fileIndent+decoration.Apply(filepath.Base(file), renderer.options.Decorations))
	}
}

// close emits the closing brace of a block. With compact braces the last
// sibling closes on the line above.
func (renderer *summaryRenderer) close(indent string, isLast bool) {
	if renderer.options.CompactBraces && isLast {
		renderer.lines[len(renderer.lines)-1] += closeBrace
		return
	}
	renderer.lines = append(renderer.lines, indent+closeBrace)
}
