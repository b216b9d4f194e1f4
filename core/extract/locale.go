package extract

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a target language with an optional territory.
type Locale struct {
	Lang      string `json:"lang"`
	Territory string `json:"territory,omitempty"`
}

// String renders the locale as lang or lang-territory.
func (l Locale) String() string {
	if l.Territory == "" {
		return l.Lang
	}
	return l.Lang + "-" + l.Territory
}

// ParseLocale splits a locale identifier such as fr, pt-BR, pt_BR or
// zh-Hans-HK into language and territory. An explicit script stays part of
// the language ("zh-Hans").
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Locale{}, fmt.Errorf("empty locale")
	}

	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, fmt.Errorf("invalid locale %q: %w", s, err)
	}

	base, script, region := tag.Raw()
	if base.String() == "und" {
		return Locale{}, fmt.Errorf("invalid locale %q: undetermined language", s)
	}

	loc := Locale{Lang: base.String()}
	if script.String() != "Zzzz" {
		loc.Lang += "-" + script.String()
	}
	if region.String() != "ZZ" {
		loc.Territory = region.String()
	}

	return loc, nil
}

// ParseLocales parses a comma separated list, ignoring blanks and duplicates.
func ParseLocales(list string) ([]Locale, error) {
	var out []Locale
	seen := make(map[Locale]bool)
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		loc, err := ParseLocale(part)
		if err != nil {
			return nil, err
		}
		if seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	return out, nil
}
