// Package catalog defines the localization catalog data model:
// localizations (one language variant of one physical file), groups
// (all language variants of the same logical file) and the single-key
// update operation that rewrites a file in canonical form.
package catalog

import (
	"slices"
	"strings"

	"github.com/Aldo97/iOSLocalizationEditor/stringsfile"
)

// Localization is the full entry set of one language variant of one
// logical strings file. It exclusively owns its entry list.
type Localization struct {
	// Language is derived from the enclosing language directory name
	// with the `.lproj` suffix stripped. Empty for malformed paths.
	Language string

	// Path is the absolute path of the physical file.
	Path string

	// Entries is kept sorted by key (stable, case-sensitive).
	Entries []stringsfile.Entry
}

// Lookup returns the first entry matching key.
// Duplicate keys are retained in storage but never selected.
func (l *Localization) Lookup(key string) (stringsfile.Entry, bool) {
	for _, e := range l.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return stringsfile.Entry{}, false
}

// Fingerprint identifies the current entry set.
func (l *Localization) Fingerprint() uint64 {
	return stringsfile.Fingerprint(l.Entries)
}

// Group aggregates all language variants of the same logical file.
type Group struct {
	// Name is the last path segment of the group key,
	// e.g. "Localizable.strings".
	Name string

	// Path is the group key: the file path with every
	// language-directory segment removed.
	Path string

	Localizations []*Localization
}

// Localization returns the variant for the given language.
func (g *Group) Localization(language string) (*Localization, bool) {
	for _, l := range g.Localizations {
		if l.Language == language {
			return l, true
		}
	}
	return nil, false
}

// SortGroups orders groups by name, case-sensitive.
func SortGroups(groups []*Group) {
	slices.SortStableFunc(groups, func(a, b *Group) int {
		return strings.Compare(a.Name, b.Name)
	})
}
