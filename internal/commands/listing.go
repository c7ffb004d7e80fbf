// Package commands runs the listing pipeline for each start directory.
package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/listall/internal/adjuster"
	"github.com/temirov/listall/internal/config"
	"github.com/temirov/listall/internal/render"
	"github.com/temirov/listall/internal/types"
	"github.com/temirov/listall/internal/walker"
)

const (
	// errorLoadPatternsFormat is used when the exclusion patterns of a start directory cannot be loaded.
	errorLoadPatternsFormat = "loading exclusion patterns for %s: %w"

	// errorAdjustPathsFormat is used when collected paths cannot be rewritten.
	errorAdjustPathsFormat = "adjusting paths for %s: %w"

	collectedListingMessage = "collected listing"
)

// CollectListing walks startAbsolutePath, applies the secondary truncation and
// rewrites the result into the configured path style.
func CollectListing(startAbsolutePath string, options types.Options, logger *zap.Logger) (*types.Listing, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	exclusionPatterns, loadError := config.LoadCombinedIgnorePatterns(startAbsolutePath, options.ExclusionPatterns, options.UseIgnoreFile, logger)
	if loadError != nil {
		return nil, fmt.Errorf(errorLoadPatternsFormat, startAbsolutePath, loadError)
	}
	walkOptions := options
	walkOptions.ExclusionPatterns = exclusionPatterns

	listing := walker.Walk(startAbsolutePath, walkOptions, logger)
	walker.Truncate(listing, walkOptions)
	logger.Debug(collectedListingMessage,
		zap.String("start", startAbsolutePath),
		zap.Int("directories", listing.Len()),
		zap.Strings("exclude", exclusionPatterns),
	)

	adjusted, adjustError := adjuster.Adjust(listing, startAbsolutePath, adjuster.RequestFromOptions(walkOptions))
	if adjustError != nil {
		return nil, fmt.Errorf(errorAdjustPathsFormat, startAbsolutePath, adjustError)
	}
	return adjusted, nil
}

// Run renders the listing of every start directory in order. Each start
// directory gets an independent walk. Cancellation is observed between start
// directories.
func Run(ctx context.Context, startAbsolutePaths []string, options types.Options, logger *zap.Logger) (string, error) {
	blocks := make([]render.Block, 0, len(startAbsolutePaths))
	for _, startAbsolutePath := range startAbsolutePaths {
		if contextError := ctx.Err(); contextError != nil {
			return "", contextError
		}
		listing, collectError := CollectListing(startAbsolutePath, options, logger)
		if collectError != nil {
			return "", collectError
		}
		blocks = append(blocks, render.Block{
			StartPath: startAbsolutePath,
			Text:      render.Render(listing, options),
		})
	}
	if len(blocks) == 0 {
		return "", nil
	}
	return render.RenderBlocks(blocks), nil
}
