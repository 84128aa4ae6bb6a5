package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config tunes the fixed game knowledge the converters depend on. Every field
// has a default matching the shipped game data.
type Config struct {
	DayLengthSeconds         float64  `yaml:"day_length_seconds"`
	ExcludedRecipeFiles      []string `yaml:"excluded_recipe_files"`
	NoToolCreators           []string `yaml:"no_tool_creators"`
	ExpectedLocales          []string `yaml:"expected_locales"`
	MissingTranslationPrefix string   `yaml:"missing_translation_prefix"`
}

func Defaults() Config {
	return Config{
		DayLengthSeconds:    435,
		ExcludedRecipeFiles: []string{"recipes_merchant.json"},
		NoToolCreators: []string{
			"alchemist", "baker", "bloomery", "cook", "dyer", "fletcher",
			"glassblower", "grinder", "kilnjobs", "merchant", "potter", "tailor",
		},
		ExpectedLocales:          []string{"en-US", "de-DE", "es-ES", "fr-FR", "pl-PL", "pt-BR", "ru-RU"},
		MissingTranslationPrefix: "MISSING:",
	}
}

// Load reads a YAML config on top of Defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("converter.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("converter.yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) Normalize() {
	c.ExcludedRecipeFiles = normalizeList(c.ExcludedRecipeFiles, false)
	c.NoToolCreators = normalizeList(c.NoToolCreators, true)
	c.ExpectedLocales = normalizeList(c.ExpectedLocales, false)
}

func (c Config) Validate() error {
	if c.DayLengthSeconds <= 0 {
		return fmt.Errorf("day_length_seconds must be > 0")
	}
	if len(c.ExpectedLocales) == 0 {
		return fmt.Errorf("expected_locales must not be empty")
	}
	if strings.TrimSpace(c.MissingTranslationPrefix) == "" {
		return fmt.Errorf("missing_translation_prefix must not be empty")
	}
	for _, f := range c.ExcludedRecipeFiles {
		if !strings.HasSuffix(f, ".json") {
			return fmt.Errorf("excluded recipe file %q must end in .json", f)
		}
	}
	return nil
}

// IsNoToolCreator reports whether an unbound creator defaults to "no tool".
func (c Config) IsNoToolCreator(creator string) bool {
	i := sort.SearchStrings(c.NoToolCreators, creator)
	return i < len(c.NoToolCreators) && c.NoToolCreators[i] == creator
}

func normalizeList(in []string, lower bool) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if lower {
			s = strings.ToLower(s)
		}
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
