package walker

import "github.com/temirov/listall/internal/types"

// defaultCollectLimitMinimum is the number of files kept when no minimum is configured.
const defaultCollectLimitMinimum = 2

// Truncate caps every file list of listing that is longer than the collect
// limit to its first and last h files, h being half the configured minimum
// (at least one). It applies only to the all strategy with a positive limit.
// Lists that the cap would not shorten are left unchanged.
func Truncate(listing *types.Listing, options types.Options) {
	if options.Collect != types.CollectAll || options.CollectLimit == nil || *options.CollectLimit <= 0 {
		return
	}
	collectLimit := *options.CollectLimit
	minimum := defaultCollectLimitMinimum
	if options.CollectLimitMinimum != nil && *options.CollectLimitMinimum != 0 {
		minimum = *options.CollectLimitMinimum
	}
	half := max(minimum/2, 1)

	for _, directory := range listing.Directories() {
		files, _ := listing.Files(directory)
		if len(files) <= collectLimit || 2*half >= len(files) {
			continue
		}
		kept := make([]string, 0, 2*half)
		kept = append(kept, files[:half]...)
		kept = append(kept, files[len(files)-half:]...)
		listing.Set(directory, kept)
	}
}
