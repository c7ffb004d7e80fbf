package types

// Listing maps directory keys to their ordered file lists while remembering
// the order in which keys were first recorded.
type Listing struct {
	keys  []string
	files map[string][]string
}

// NewListing returns an empty listing.
func NewListing() *Listing {
	return &Listing{files: make(map[string][]string)}
}

// Record registers directory without changing its files.
func (listing *Listing) Record(directory string) {
	if _, exists := listing.files[directory]; exists {
		return
	}
	listing.keys = append(listing.keys, directory)
	listing.files[directory] = nil
}

// Set replaces the files stored for directory, registering it when needed.
func (listing *Listing) Set(directory string, files []string) {
	listing.Record(directory)
	listing.files[directory] = append([]string(nil), files...)
}

// Append adds files to the list stored for directory.
func (listing *Listing) Append(directory string, files ...string) {
	listing.Record(directory)
	listing.files[directory] = append(listing.files[directory], files...)
}

// Files returns the files recorded for directory.
func (listing *Listing) Files(directory string) ([]string, bool) {
	files, exists := listing.files[directory]
	return files, exists
}

// Directories returns the directory keys in recording order.
func (listing *Listing) Directories() []string {
	return append([]string(nil), listing.keys...)
}

// Len reports the number of directory keys.
func (listing *Listing) Len() int {
	return len(listing.keys)
}
