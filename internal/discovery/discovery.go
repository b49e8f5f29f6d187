// Package discovery walks a project tree, finds all `.strings` files
// and assembles them into localization groups spanning languages.
package discovery

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Aldo97/iOSLocalizationEditor/catalog"
	"github.com/Aldo97/iOSLocalizationEditor/internal/config"
	"github.com/Aldo97/iOSLocalizationEditor/internal/plistdict"
	"github.com/Aldo97/iOSLocalizationEditor/internal/worker"
	"github.com/Aldo97/iOSLocalizationEditor/stringsfile"

	"github.com/rs/zerolog/log"
)

const (
	// stringsExt is the extension of localization table files.
	stringsExt = ".strings"

	// languageDirSuffix marks a path segment as a language directory:
	// "en.lproj" holds the English variants.
	languageDirSuffix = ".lproj"
)

// GroupKeyOf normalizes path into a group identity: every language
// directory segment is dropped and the rest rejoined. Two files with
// the same group key are variants of the same logical file.
func GroupKeyOf(path string) string {
	segments := strings.Split(filepath.ToSlash(path), "/")
	kept := segments[:0]
	for _, s := range segments {
		if strings.HasSuffix(s, languageDirSuffix) {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, "/")
}

// LanguageOf derives the language tag of path: the name of the
// enclosing directory with the language suffix stripped.
// A path without an enclosing directory yields "".
func LanguageOf(path string) string {
	segments := strings.Split(filepath.ToSlash(path), "/")
	if len(segments) < 2 {
		return ""
	}
	return strings.TrimSuffix(segments[len(segments)-2], languageDirSuffix)
}

// Scanner builds the full catalog from one pass over a directory tree.
type Scanner struct {
	// List enumerates candidate files. Defaults to Walk.
	List ListFunc

	// IgnoredDirs are path segments causing exclusion.
	IgnoredDirs []string

	// Workers bounds per-file parse concurrency.
	Workers int
}

func NewScanner(cfg *config.Config) *Scanner {
	return &Scanner{
		List:        Walk,
		IgnoredDirs: cfg.IgnoredDirs,
		Workers:     cfg.Workers,
	}
}

// Scan discovers every strings file under root and returns the
// catalog as groups sorted by name. The catalog is rebuilt from
// scratch on every call.
//
// Per-file parses run concurrently; grouping happens only after all
// of them completed. Per-file failures degrade to zero entries and
// never abort the scan.
func (s *Scanner) Scan(ctx context.Context, root string) ([]*catalog.Group, error) {
	list := s.List
	if list == nil {
		list = Walk
	}

	paths, err := list(root)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, p := range paths {
		if filepath.Ext(p) != stringsExt {
			continue
		}
		if s.ignored(p) {
			continue
		}
		matched = append(matched, p)
	}
	// Deterministic localization order per discovery.
	slices.Sort(matched)

	pool := worker.NewPool(s.Workers,
		func(ctx context.Context, path string) (*catalog.Localization, error) {
			return LoadLocalization(path), nil
		},
	)
	parsed := pool.Execute(ctx, matched)

	// Reduce into groups strictly after all per-file parses are done.
	byKey := make(map[string]*catalog.Group, len(parsed))
	var groups []*catalog.Group
	for _, task := range parsed {
		loc := task.Result
		if loc == nil {
			continue // Cancelled scan.
		}
		key := GroupKeyOf(loc.Path)
		g, ok := byKey[key]
		if !ok {
			g = &catalog.Group{
				Name: filepath.Base(key),
				Path: key,
			}
			byKey[key] = g
			groups = append(groups, g)
		}
		if _, exists := g.Localization(loc.Language); exists {
			// At most one variant per language and group.
			log.Warn().
				Str("path", loc.Path).
				Str("language", loc.Language).
				Msg("Duplicate language variant ignored")
			continue
		}
		g.Localizations = append(g.Localizations, loc)
	}

	catalog.SortGroups(groups)
	log.Info().Int("files", len(matched)).Int("groups", len(groups)).
		Str("root", root).Msg("Discovered localization groups")
	return groups, nil
}

func (s *Scanner) ignored(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if slices.Contains(s.IgnoredDirs, seg) {
			return true
		}
	}
	return false
}

// LoadLocalization parses one file into a localization.
// The strings grammar is tried first; files it rejects go through the
// plist dictionary fallback; if that fails too the file contributes
// zero entries. Entries end up sorted by key.
func LoadLocalization(path string) *catalog.Localization {
	language := LanguageOf(path)
	if language == "" {
		log.Warn().Str("path", path).
			Msg("No enclosing language directory, using empty language tag")
	}

	loc := &catalog.Localization{
		Language: language,
		Path:     path,
	}

	entries, err := parseStrings(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).
			Msg("Strings grammar rejected file, trying plist dictionary")
		entries, err = plistdict.Load(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).
				Msg("File is neither a strings table nor a flat dictionary")
			entries = nil
		}
	}

	stringsfile.SortEntries(entries)
	loc.Entries = entries
	return loc
}

func parseStrings(path string) ([]stringsfile.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return stringsfile.NewDecoder().Decode(path, bytes.NewReader(data))
}
