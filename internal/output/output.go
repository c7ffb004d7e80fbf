// Package output delivers rendered text to the requested destinations.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/listall/internal/services/clipboard"
	"github.com/temirov/listall/internal/types"
	"github.com/temirov/listall/internal/utils"
)

const (
	fileWrittenMessageFormat     = "Content written to file: %s\n"
	clipboardCopiedMessage       = "Content copied to clipboard.\n"
	defaultFileNamePrefix        = "listall_"
	defaultFileNameExtension     = ".txt"
	outputFilePermissions        = 0o644
	writeFileErrorFormat         = "write output file %s: %w"
	copyClipboardErrorFormat     = "copy to clipboard: %w"
	missingClipboardMessage      = "clipboard service is not configured"
	writeStdoutErrorFormat       = "write output: %w"
	unsupportedTargetErrorFormat = "unsupported output target %q"
)

// Delivery describes where rendered text goes.
type Delivery struct {
	Targets   []types.OutputTarget
	FileName  string
	Stdout    io.Writer
	Clipboard clipboard.Copier
}

// DefaultFileName returns the timestamped output file name used when none is given.
func DefaultFileName(now time.Time) string {
	return defaultFileNamePrefix + utils.FormatFileStamp(now) + defaultFileNameExtension
}

// ResolveTargets expands "all" and applies the stdout default. The result is
// ordered file, clipboard, stdout.
func ResolveTargets(targets []types.OutputTarget) ([]types.OutputTarget, error) {
	requested := make(map[types.OutputTarget]struct{})
	for _, target := range targets {
		switch target {
		case types.OutputAll:
			requested[types.OutputFile] = struct{}{}
			requested[types.OutputClipboard] = struct{}{}
			requested[types.OutputStdout] = struct{}{}
		case types.OutputFile, types.OutputClipboard, types.OutputStdout:
			requested[target] = struct{}{}
		default:
			return nil, fmt.Errorf(unsupportedTargetErrorFormat, target)
		}
	}
	if len(requested) == 0 {
		return []types.OutputTarget{types.OutputStdout}, nil
	}
	var resolved []types.OutputTarget
	for _, target := range []types.OutputTarget{types.OutputFile, types.OutputClipboard, types.OutputStdout} {
		if _, found := requested[target]; found {
			resolved = append(resolved, target)
		}
	}
	return resolved, nil
}

// Deliver sends content to every target. The file and clipboard targets run
// concurrently; their status lines and then the content itself are written to
// Stdout once both finished.
func Deliver(ctx context.Context, content string, delivery Delivery) error {
	targets, resolveError := ResolveTargets(delivery.Targets)
	if resolveError != nil {
		return resolveError
	}
	stdout := delivery.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	fileName := delivery.FileName
	if fileName == "" {
		fileName = DefaultFileName(time.Now())
	}

	var fileWritten, clipboardCopied, stdoutRequested bool
	group, _ := errgroup.WithContext(ctx)
	for _, target := range targets {
		switch target {
		case types.OutputFile:
			group.Go(func() error {
				if writeError := os.WriteFile(fileName, []byte(content), outputFilePermissions); writeError != nil {
					return fmt.Errorf(writeFileErrorFormat, fileName, writeError)
				}
				fileWritten = true
				return nil
			})
		case types.OutputClipboard:
			group.Go(func() error {
				if delivery.Clipboard == nil {
					return errors.New(missingClipboardMessage)
				}
				if copyError := delivery.Clipboard.Copy(content); copyError != nil {
					return fmt.Errorf(copyClipboardErrorFormat, copyError)
				}
				clipboardCopied = true
				return nil
			})
		case types.OutputStdout:
			stdoutRequested = true
		}
	}
	groupError := group.Wait()

	if fileWritten {
		if _, printError := fmt.Fprintf(stdout, fileWrittenMessageFormat, fileName); printError != nil {
			return fmt.Errorf(writeStdoutErrorFormat, printError)
		}
	}
	if clipboardCopied {
		if _, printError := io.WriteString(stdout, clipboardCopiedMessage); printError != nil {
			return fmt.Errorf(writeStdoutErrorFormat, printError)
		}
	}
	if groupError != nil {
		return groupError
	}
	if stdoutRequested {
		if _, printError := fmt.Fprintln(stdout, content); printError != nil {
			return fmt.Errorf(writeStdoutErrorFormat, printError)
		}
	}
	return nil
}
