package stringsfile_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/Aldo97/iOSLocalizationEditor/stringsfile"

	"github.com/stretchr/testify/require"
)

func decodeStr(t *testing.T, input string) []stringsfile.Entry {
	t.Helper()
	d := stringsfile.NewDecoder()
	entries, err := d.Decode("test.strings", strings.NewReader(input))
	require.NoError(t, err)
	return entries
}

func TestDecodeEncodeCanonical(t *testing.T) {
	// A file that is already in canonical form must
	// reproduce byte-identically after decode→sort→encode.
	original, err := os.ReadFile("testdata/canonical.strings")
	require.NoError(t, err)

	d := stringsfile.NewDecoder()
	entries, err := d.Decode("canonical.strings", bytes.NewReader(original))
	require.NoError(t, err)
	stringsfile.SortEntries(entries)

	var buf bytes.Buffer
	require.NoError(t, stringsfile.Encoder{}.Encode(&buf, entries))
	require.Equal(t, string(original), buf.String())
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for _, file := range []string{
		"testdata/canonical.strings",
		"testdata/messy.strings",
	} {
		t.Run(file, func(t *testing.T) {
			fd, err := os.OpenFile(file, os.O_RDONLY, 0o644)
			require.NoError(t, err)
			defer func() { _ = fd.Close() }()

			d := stringsfile.NewDecoder()
			entries, err := d.Decode(file, fd)
			require.NoError(t, err)
			stringsfile.SortEntries(entries)

			var buf bytes.Buffer
			require.NoError(t, stringsfile.Encoder{}.Encode(&buf, entries))

			reparsed, err := d.Decode(file, &buf)
			require.NoError(t, err)
			stringsfile.SortEntries(reparsed)
			require.Equal(t, entries, reparsed)
		})
	}
}

func TestDecode(t *testing.T) {
	entries := decodeStr(t, `
/* stale */
/* Greeting shown on launch */
"greeting" = "Hello";
"plain" = "no comment";
`)
	require.Equal(t, []stringsfile.Entry{
		// Only the comment immediately preceding a key attaches.
		{Key: "greeting", Value: "Hello", Message: "Greeting shown on launch"},
		{Key: "plain", Value: "no comment"},
	}, entries)
}

func TestDecodeWhitespaceInsignificant(t *testing.T) {
	entries := decodeStr(t, "\t \"k\"\n=\n\t\"v\"\r\n  ;")
	require.Equal(t, []stringsfile.Entry{{Key: "k", Value: "v"}}, entries)
}

func TestDecodeEscapedQuote(t *testing.T) {
	entries := decodeStr(t, `"q" = "say \"hi\"";`)
	require.Equal(t, []stringsfile.Entry{
		{Key: "q", Value: `say "hi"`},
	}, entries)

	var buf bytes.Buffer
	require.NoError(t, stringsfile.Encoder{}.Encode(&buf, entries))
	require.Equal(t, "\"q\" = \"say \\\"hi\\\"\";\n\n", buf.String())

	reparsed := decodeStr(t, buf.String())
	require.Equal(t, entries, reparsed)
}

func TestDecodeEmpty(t *testing.T) {
	require.Empty(t, decodeStr(t, ""))
	require.Empty(t, decodeStr(t, " \n\t\r\n "))
}

func TestDecodeDuplicateKeysPreserved(t *testing.T) {
	entries := decodeStr(t, `
"dup" = "first";
"dup" = "second";
`)
	require.Len(t, entries, 2)
	require.Equal(t, "first", entries[0].Value)
	require.Equal(t, "second", entries[1].Value)

	// Stable sort keeps file order among equal keys.
	stringsfile.SortEntries(entries)
	require.Equal(t, "first", entries[0].Value)
}

func TestDecodeErr(t *testing.T) {
	for _, td := range []struct {
		name     string
		input    string
		expected string
	}{
		{"garbage", "NOT A VALID STRINGS FILE", "comment or key"},
		{"missing equals", `"k" "v";`, "equals sign"},
		{"missing semicolon", `"k" = "v"`, "semicolon"},
		{"wrong terminator", `"k" = "v",`, "semicolon"},
		{"unterminated comment", `/* never closed`, "end of comment"},
		{"unterminated key", `"key`, "end of key"},
		{"unterminated value", `"k" = "v`, "end of value"},
		{"value missing quote", `"k" = v";`, "value"},
		{"lone slash", `/ "k" = "v";`, "comment"},
	} {
		t.Run(td.name, func(t *testing.T) {
			d := stringsfile.NewDecoder()
			entries, err := d.Decode("bad.strings", strings.NewReader(td.input))
			require.Error(t, err)
			require.Nil(t, entries)

			var serr stringsfile.Error
			require.ErrorAs(t, err, &serr)
			require.Equal(t, td.expected, serr.Expected)
			require.Equal(t, "bad.strings", serr.Pos.Filename)
		})
	}
}

func TestDecodeErrPosition(t *testing.T) {
	d := stringsfile.NewDecoder()
	_, err := d.Decode("pos.strings", strings.NewReader("\n\n  oops"))
	var serr stringsfile.Error
	require.ErrorAs(t, err, &serr)
	require.Equal(t, uint32(3), serr.Pos.Line)
	require.Equal(t, uint32(3), serr.Pos.Column)
}

func TestSortEntries(t *testing.T) {
	entries := []stringsfile.Entry{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
		{Key: "A", Value: "3"},
	}
	stringsfile.SortEntries(entries)
	// Case-sensitive byte-wise order.
	require.Equal(t, "A", entries[0].Key)
	require.Equal(t, "a", entries[1].Key)
	require.Equal(t, "b", entries[2].Key)
}

func TestFingerprint(t *testing.T) {
	a := []stringsfile.Entry{
		{Key: "x", Value: "1"},
		{Key: "y", Value: "2", Message: "m"},
	}
	b := []stringsfile.Entry{
		{Key: "y", Value: "2", Message: "m"},
		{Key: "x", Value: "1"},
	}
	require.Equal(t, stringsfile.Fingerprint(a), stringsfile.Fingerprint(b))

	c := []stringsfile.Entry{
		{Key: "x", Value: "1"},
		{Key: "y", Value: "changed", Message: "m"},
	}
	require.NotEqual(t, stringsfile.Fingerprint(a), stringsfile.Fingerprint(c))

	d := []stringsfile.Entry{
		{Key: "x", Value: "1"},
		{Key: "y", Value: "2", Message: "other"},
	}
	require.NotEqual(t, stringsfile.Fingerprint(a), stringsfile.Fingerprint(d))
}
