package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Aldo97/iOSLocalizationEditor/stringsfile"
)

var ErrWrite = errors.New("writing strings file")

// Update sets key to (value, message) in l and rewrites l's file in
// canonical form. It reports whether anything changed:
//
//   - An entry with identical key, value and message already exists:
//     nothing is mutated, no write happens, returns (false, nil).
//   - The key exists with different content: value and message are
//     replaced in place.
//   - The key doesn't exist: a new entry is appended, then the list
//     is re-sorted.
//
// On write failure the in-memory entry list keeps the update; memory
// and disk have diverged and the caller may retry.
func Update(l *Localization, key, value, message string) (bool, error) {
	if i := indexOf(l.Entries, key); i >= 0 {
		e := &l.Entries[i]
		if e.Value == value && e.Message == message {
			return false, nil
		}
		e.Value = value
		e.Message = message
	} else {
		l.Entries = append(l.Entries, stringsfile.Entry{
			Key: key, Value: value, Message: message,
		})
	}
	stringsfile.SortEntries(l.Entries)

	if err := writeFile(l.Path, l.Entries); err != nil {
		return true, err
	}
	return true, nil
}

// indexOf returns the position of the first entry matching key,
// preserving first-match-wins on duplicates.
func indexOf(entries []stringsfile.Entry, key string) int {
	for i := range entries {
		if entries[i].Key == key {
			return i
		}
	}
	return -1
}

// writeFile renders entries and atomically replaces path:
// the rendering goes to a temp file in the target directory which is
// then renamed over the original to avoid partial-write corruption.
func writeFile(path string, entries []stringsfile.Entry) error {
	var buf bytes.Buffer
	if err := (stringsfile.Encoder{}).Encode(&buf, entries); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	// CreateTemp files are 0600, regular strings files aren't.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w %q: %w", ErrWrite, path, err)
	}
	return nil
}
