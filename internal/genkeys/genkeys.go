// Package genkeys generates a Go source file of typed constants for
// the keys of a localization group.
package genkeys

import (
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/Aldo97/iOSLocalizationEditor/catalog"

	"mvdan.cc/gofumpt/format"
)

//go:embed template.gotmpl
var templateGotmpl string

type keyConst struct {
	Ident string
	// Key is the already-quoted Go string literal.
	Key string
}

// Write renders the key constants of group as a gofumpt-formatted
// Go file to w. Keys are the union over all language variants, sorted.
func Write(w io.Writer, packageName string, group *catalog.Group) error {
	tmpl, err := template.New("genkeys").Parse(templateGotmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	seen := make(map[string]struct{})
	var keys []string
	for _, loc := range group.Localizations {
		for _, e := range loc.Entries {
			if _, ok := seen[e.Key]; ok {
				continue
			}
			seen[e.Key] = struct{}{}
			keys = append(keys, e.Key)
		}
	}
	slices.Sort(keys)

	used := make(map[string]int, len(keys))
	consts := make([]keyConst, len(keys))
	for i, k := range keys {
		ident := identFor(k)
		if n, ok := used[ident]; ok {
			used[ident] = n + 1
			ident = fmt.Sprintf("%s%d", ident, n+1)
		} else {
			used[ident] = 1
		}
		consts[i] = keyConst{Ident: ident, Key: strconv.Quote(k)}
	}

	var buf strings.Builder
	err = tmpl.Execute(&buf, struct {
		Package string
		Group   string
		Consts  []keyConst
	}{
		Package: packageName,
		Group:   group.Name,
		Consts:  consts,
	})
	if err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	formatted, err := format.Source([]byte(buf.String()), format.Options{})
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}

	if _, err := w.Write(formatted); err != nil {
		return fmt.Errorf("writing generated code: %w", err)
	}
	return nil
}

// identFor derives an exported CamelCase Go identifier from a key
// like "cancel_button.title" -> "CancelButtonTitle".
func identFor(key string) string {
	var b strings.Builder
	upper := true
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()
	if s == "" || unicode.IsDigit(rune(s[0])) {
		s = "Key" + s
	}
	return s
}
