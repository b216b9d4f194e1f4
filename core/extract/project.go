package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"locale-manager/core/record"
)

const (
	// StringsFileName is the only file read and written by the project adapter.
	// InfoPlist.strings and other tables are never touched.
	StringsFileName = "Localizable.strings"

	lprojSuffix = ".lproj"
)

// ProjectExtractor reads the source-locale Localizable.strings files of a
// project tree.
type ProjectExtractor struct {
	// Root is the project directory.
	Root string

	// Source is the source locale, e.g. en.
	Source Locale
}

// NewProjectExtractor creates an extractor for root reading sourceLocale.
func NewProjectExtractor(root, sourceLocale string) (*ProjectExtractor, error) {
	loc, err := ParseLocale(sourceLocale)
	if err != nil {
		return nil, err
	}
	return &ProjectExtractor{Root: root, Source: loc}, nil
}

// Extract parses every source-locale strings file under Root, in path order.
// Every parsed item is returned; a key defined twice is left for the
// reconciliation to reject as a duplicate.
func (e *ProjectExtractor) Extract(ctx context.Context) ([]Item, error) {
	files, err := e.files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s found for locale %s under %s", StringsFileName, e.Source, e.Root)
	}

	var items []Item
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parsed, err := parseFile(path)
		if err != nil {
			return nil, err
		}
		items = append(items, parsed...)
	}

	return items, nil
}

func (e *ProjectExtractor) files() ([]string, error) {
	var files []string
	err := filepath.WalkDir(e.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != StringsFileName {
			return nil
		}
		loc, ok := lprojLocale(filepath.Base(filepath.Dir(path)))
		if ok && loc == e.Source {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", e.Root, err)
	}
	sort.Strings(files)
	return files, nil
}

func parseFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := ParseStrings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// lprojLocale returns the locale of a <locale>.lproj directory name.
// Base.lproj and other non-locale folders are rejected.
func lprojLocale(dir string) (Locale, bool) {
	if !strings.HasSuffix(dir, lprojSuffix) {
		return Locale{}, false
	}
	loc, err := ParseLocale(strings.TrimSuffix(dir, lprojSuffix))
	if err != nil {
		return Locale{}, false
	}
	return loc, true
}

// ProjectLocales lists the locales that have a Localizable.strings under root.
func ProjectLocales(root string) ([]Locale, error) {
	set := make(map[Locale]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != StringsFileName {
			return nil
		}
		if loc, ok := lprojLocale(filepath.Base(filepath.Dir(path))); ok {
			set[loc] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	locales := make([]Locale, 0, len(set))
	for loc := range set {
		locales = append(locales, loc)
	}
	sort.Slice(locales, func(i, j int) bool { return locales[i].String() < locales[j].String() })
	return locales, nil
}

// ProjectTranslations reads the Localizable.strings files of every locale
// under root other than source, keyed by locale. Files of one locale are
// read in path order. Locales without any entry are omitted.
func ProjectTranslations(ctx context.Context, root string, source Locale) (map[Locale][]Item, error) {
	locales, err := ProjectLocales(root)
	if err != nil {
		return nil, err
	}

	out := make(map[Locale][]Item, len(locales))
	for _, loc := range locales {
		if loc == source {
			continue
		}
		files, err := (&ProjectExtractor{Root: root, Source: loc}).files()
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			parsed, err := parseFile(path)
			if err != nil {
				return nil, err
			}
			if len(parsed) > 0 {
				out[loc] = append(out[loc], parsed...)
			}
		}
	}
	return out, nil
}

// Deploy writes one <locale>.lproj/Localizable.strings per partition of
// records under dir, replacing existing files. Records of other
// applications than appID are ignored. Returns the written paths.
func Deploy(dir, appID string, records []record.Record) ([]string, error) {
	byLocale := make(map[string][]record.Record)
	for _, r := range records {
		if r.AppID != appID {
			continue
		}
		locale := r.Partition().Locale()
		byLocale[locale] = append(byLocale[locale], r)
	}

	locales := make([]string, 0, len(byLocale))
	for locale := range byLocale {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	var written []string
	for _, locale := range locales {
		partition := byLocale[locale]
		record.SortRecords(partition)

		entries := make([]Entry, 0, len(partition))
		for _, r := range partition {
			value := r.TextLocalized
			if value == "" {
				value = r.TextOriginal
			}
			entries = append(entries, Entry{Key: r.TextKey, Value: value, Comment: r.TextComment})
		}

		target := filepath.Join(dir, locale+lprojSuffix)
		if err := os.MkdirAll(target, 0o755); err != nil {
			return written, fmt.Errorf("failed to create %s: %w", target, err)
		}
		path := filepath.Join(target, StringsFileName)
		if err := writeFile(path, entries); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func writeFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteStrings(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
