// Package plistdict interprets a file as a flat string-to-string
// property list dictionary. It is the fallback for files rejected by
// the strings parser, such as XML or binary plist variants.
package plistdict

import (
	"errors"
	"fmt"
	"os"

	"github.com/Aldo97/iOSLocalizationEditor/stringsfile"

	"howett.net/plist"
)

var ErrNotStringDict = errors.New("not a flat string dictionary")

// Load reads path as a plist dictionary and synthesizes one entry per
// key/value pair with no comment message. Entry order follows the
// underlying decoder and is not stable; callers sort afterwards.
func Load(path string) ([]stringsfile.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	var dict map[string]any
	if _, err := plist.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrNotStringDict, path, err)
	}

	entries := make([]stringsfile.Entry, 0, len(dict))
	for k, v := range dict {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q: key %q has non-string value",
				ErrNotStringDict, path, k)
		}
		entries = append(entries, stringsfile.Entry{Key: k, Value: s})
	}
	return entries, nil
}
