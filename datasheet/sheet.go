package datasheet

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/r0tools/datasheet-libs/common"
	libErrs "github.com/r0tools/datasheet-libs/errors"
)

var _ SheetIntrospector = (*LoadedSheet)(nil)

// Entry is a single benchmark row in a datasheet.
type Entry struct {
	Name    string             `json:"name"`
	Metrics map[string]float64 `json:"metrics"`
}

// Implement the `nameable` interface

func (e Entry) GetName() string {
	return e.Name
}

type LoadedSheet struct {
	entries []Entry
}

// LoadSheet parses a datasheet JSON payload.
func LoadSheet(data []byte) (*LoadedSheet, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, libErrs.NewSheetErr(fmt.Errorf("%w: %w", libErrs.ErrParseSheet, err))
	}
	return &LoadedSheet{entries}, nil
}

// GetEntries implements SheetIntrospector.
func (s *LoadedSheet) GetEntries() ([]Entry, error) {
	entries := slices.Clone(s.entries)
	slices.SortFunc(entries, common.CompareByName)
	return entries, nil
}

// GetEntry implements SheetIntrospector.
func (s *LoadedSheet) GetEntry(name string) (Entry, error) {
	idx := slices.IndexFunc(s.entries, common.EqualByName[Entry](name))
	if idx == -1 {
		return Entry{}, libErrs.NewSheetErr(fmt.Errorf("%q %w", name, libErrs.ErrNotFound))
	}
	return s.entries[idx], nil
}

// Names implements SheetIntrospector.
func (s *LoadedSheet) Names() []string {
	return slices.Collect(common.Names(slices.Values(s.entries)))
}
