package domain

import "sort"

// SelectPlaceholder is the first entry of every filename selection list.
const SelectPlaceholder = "-- Select a file --"

// Directory is the set of document names known to the backend.
type Directory struct {
	// Names is sorted lexicographically ascending.
	Names []string
}

// NewDirectory returns a Directory holding a sorted copy of names.
func NewDirectory(names []string) Directory {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return Directory{Names: sorted}
}

// Options returns the selection list: the placeholder followed by every name.
func (d Directory) Options() []string {
	options := make([]string, 0, len(d.Names)+1)
	options = append(options, SelectPlaceholder)
	return append(options, d.Names...)
}

// Len returns the number of document names.
func (d Directory) Len() int {
	return len(d.Names)
}
