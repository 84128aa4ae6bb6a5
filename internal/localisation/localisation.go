// Package localisation merges the per-locale translation files into a single
// id -> locale -> text lookup.
package localisation

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/files"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/gamedata"
)

const Dir = "localization"

//go:embed static_translations.yaml
var staticTable []byte

var (
	ErrInvalidLocale    = errors.New("invalid locale file name")
	ErrDuplicateLocale  = errors.New("multiple files for locale")
	ErrUnexpectedLocale = errors.New("locale has no static translations")
)

// Text maps a locale tag to a translated string.
type Text map[string]string

type Translations struct {
	Items    map[string]Text `json:"items" yaml:"items"`
	Creators map[string]Text `json:"creators" yaml:"creators"`
}

func ParseStatic(raw []byte) (Translations, error) {
	var t Translations
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("static_translations.yaml: %w", err)
	}
	return t, nil
}

func DefaultStatic() (Translations, error) {
	return ParseStatic(staticTable)
}

type Options struct {
	ExpectedLocales []string
	MissingPrefix   string
	Static          Translations
	Logger          *log.Logger
}

// Merge discovers <inputDir>/localization/*.json, one file per locale, and
// merges them with the static translations.
func Merge(ctx context.Context, inputDir string, opts Options) (Translations, error) {
	paths, err := files.Find(filepath.Join(inputDir, Dir), files.FindOptions{Extension: "json"})
	if err != nil {
		return Translations{}, err
	}
	expected, err := canonicalSet(opts.ExpectedLocales)
	if err != nil {
		return Translations{}, err
	}

	locales := make([]string, len(paths))
	seen := map[string]string{}
	for i, p := range paths {
		base := strings.TrimSuffix(filepath.Base(p), ".json")
		tag, err := language.Parse(base)
		if err != nil {
			return Translations{}, fmt.Errorf("%w: %s: %v", ErrInvalidLocale, filepath.Base(p), err)
		}
		locale := tag.String()
		if prev, ok := seen[locale]; ok {
			return Translations{}, fmt.Errorf("%w %s: %s and %s", ErrDuplicateLocale, locale, prev, p)
		}
		if _, ok := expected[locale]; !ok {
			return Translations{}, fmt.Errorf("%w: %s", ErrUnexpectedLocale, locale)
		}
		seen[locale] = p
		locales[i] = locale
	}

	schema, err := gamedata.Schema(gamedata.Locale)
	if err != nil {
		return Translations{}, err
	}
	parsed, err := files.ReadAll[gamedata.LocaleFile](ctx, paths, schema)
	if err != nil {
		return Translations{}, err
	}

	byLocale := make(map[string]gamedata.LocaleFile, len(parsed))
	for i, f := range parsed {
		byLocale[locales[i]] = f
	}
	return MergeFiles(byLocale, opts), nil
}

// MergeFiles flattens already validated locale files and overlays the static
// translations. Texts carrying the missing translation prefix are dropped.
func MergeFiles(byLocale map[string]gamedata.LocaleFile, opts Options) Translations {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	out := Translations{Items: map[string]Text{}, Creators: map[string]Text{}}

	locales := make([]string, 0, len(byLocale))
	for l := range byLocale {
		locales = append(locales, l)
	}
	sort.Strings(locales)

	dropped := 0
	for _, locale := range locales {
		f := byLocale[locale]
		dropped += add(out.Items, f.Types, locale, opts.MissingPrefix)
		dropped += add(out.Creators, f.NPCs, locale, opts.MissingPrefix)
	}
	if dropped > 0 {
		logger.Printf("dropped %d untranslated entries", dropped)
	}

	overlay(out.Items, opts.Static.Items)
	overlay(out.Creators, opts.Static.Creators)
	return out
}

func add(dst map[string]Text, src map[string]string, locale, missingPrefix string) int {
	dropped := 0
	for id, text := range src {
		if missingPrefix != "" && strings.HasPrefix(text, missingPrefix) {
			dropped++
			continue
		}
		t, ok := dst[id]
		if !ok {
			t = Text{}
			dst[id] = t
		}
		t[locale] = text
	}
	return dropped
}

func overlay(dst map[string]Text, static map[string]Text) {
	for id, texts := range static {
		t, ok := dst[id]
		if !ok {
			t = Text{}
			dst[id] = t
		}
		for locale, text := range texts {
			t[locale] = text
		}
	}
}

func canonicalSet(locales []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("expected locale %q: %w", l, err)
		}
		out[tag.String()] = struct{}{}
	}
	return out, nil
}
