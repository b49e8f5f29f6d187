package plistdict_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Aldo97/iOSLocalizationEditor/internal/plistdict"
	"github.com/Aldo97/iOSLocalizationEditor/stringsfile"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadXMLPlist(t *testing.T) {
	path := writeTemp(t, "L.strings", `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>greeting</key>
	<string>Hello</string>
	<key>farewell</key>
	<string>Bye</string>
</dict>
</plist>`)

	entries, err := plistdict.Load(path)
	require.NoError(t, err)
	stringsfile.SortEntries(entries)
	require.Equal(t, []stringsfile.Entry{
		{Key: "farewell", Value: "Bye"},
		{Key: "greeting", Value: "Hello"},
	}, entries)
}

func TestLoadNonStringValue(t *testing.T) {
	path := writeTemp(t, "L.strings", `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>count</key>
	<integer>3</integer>
</dict>
</plist>`)

	_, err := plistdict.Load(path)
	require.ErrorIs(t, err, plistdict.ErrNotStringDict)
}

func TestLoadGarbage(t *testing.T) {
	path := writeTemp(t, "L.strings", "NOT A VALID STRINGS FILE")
	_, err := plistdict.Load(path)
	require.ErrorIs(t, err, plistdict.ErrNotStringDict)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := plistdict.Load(filepath.Join(t.TempDir(), "absent.strings"))
	require.Error(t, err)
	require.NotErrorIs(t, err, plistdict.ErrNotStringDict)
}
