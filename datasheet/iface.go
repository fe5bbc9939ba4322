// Package datasheet contains type definitions for working with per-release
// datasheet artifacts.
package datasheet

type SheetIntrospector interface {
	// GetEntries returns all benchmark entries in the sheet, sorted by name.
	GetEntries() ([]Entry, error)
	// GetEntry returns the benchmark entry with the given name.
	GetEntry(name string) (Entry, error)
	// Names returns the names of all benchmark entries in the sheet.
	Names() []string
}
