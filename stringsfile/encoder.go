package stringsfile

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// SortEntries sorts entries by key, case-sensitive byte-wise.
// The sort is stable so duplicate keys keep their file order and
// first-match lookup semantics survive sorting.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
}

type Encoder struct{}

// Encode writes entries as a canonical `.strings` table to w:
// an optional `/* message */` line, then `"key" = "value";` with
// quotes escaped, then a blank line after every entry.
//
// Encode renders entries in the given order; callers sort beforehand.
func (e Encoder) Encode(w io.Writer, entries []Entry) error {
	for _, entry := range entries {
		if entry.Message != "" {
			if _, err := fmt.Fprintf(w, "/* %s */\n", entry.Message); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\"%s\" = \"%s\";\n\n",
			entry.Key, escapeQuotes(entry.Value)); err != nil {
			return err
		}
	}
	return nil
}

// escapeQuotes escapes `"` as `\"`. No other escaping is defined
// for the format, keys carry none at all.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
