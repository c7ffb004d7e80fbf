// Package decoration rewrites rendered paths according to the selected
// decoration set.
package decoration

import (
	"strings"

	"github.com/temirov/listall/internal/types"
)

const (
	unixLeader    = "./"
	windowsLeader = ".\\"

	currentDirectory = "."
)

// Apply decorates path. Leader handling runs first, no-leader taking
// precedence over rel-leader, followed by separator conversion, unix taking
// precedence over windows. The start directory "." becomes the bare leader.
func Apply(path string, decorations types.DecorationSet) string {
	if decorations.Has(types.DecorationNoLeader) {
		path = StripLeader(path)
	} else if decorations.Has(types.DecorationRelativeLeader) {
		leader := unixLeader
		if decorations.Has(types.DecorationWindows) {
			leader = windowsLeader
		}
		path = StripLeader(path)
		if path == currentDirectory {
			path = ""
		}
		path = leader + path
	}

	if decorations.Has(types.DecorationUnix) {
		path = strings.ReplaceAll(path, "\\", "/")
	} else if decorations.Has(types.DecorationWindows) {
		path = strings.ReplaceAll(path, "/", "\\")
	}
	return path
}

// StripLeader removes every leading "./" and ".\" from path. Other leading
// dots and separators are kept.
func StripLeader(path string) string {
	for {
		switch {
		case strings.HasPrefix(path, unixLeader):
			path = path[len(unixLeader):]
		case strings.HasPrefix(path, windowsLeader):
			path = path[len(windowsLeader):]
		default:
			return path
		}
	}
}
