// Package names resolves raw game identifiers to user facing names.
package names

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed names.yaml
var defaultTable []byte

var (
	ErrUnknownItem    = errors.New("unknown item")
	ErrUnknownCreator = errors.New("unknown creator")
)

type table struct {
	Items    map[string]string `yaml:"items"`
	Creators map[string]string `yaml:"creators"`
}

type Dictionary struct {
	items    map[string]string
	creators map[string]string
}

func New(items, creators map[string]string) *Dictionary {
	d := &Dictionary{
		items:    make(map[string]string, len(items)),
		creators: make(map[string]string, len(creators)),
	}
	for k, v := range items {
		d.items[k] = v
	}
	for k, v := range creators {
		d.creators[k] = v
	}
	return d
}

// Parse reads a YAML table with top level "items" and "creators" maps.
func Parse(raw []byte) (*Dictionary, error) {
	var t table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("names.yaml: %w", err)
	}
	for id, name := range t.Items {
		if name == "" {
			return nil, fmt.Errorf("names.yaml: empty name for item %q", id)
		}
	}
	for id, name := range t.Creators {
		if name == "" {
			return nil, fmt.Errorf("names.yaml: empty name for creator %q", id)
		}
	}
	return New(t.Items, t.Creators), nil
}

// Default returns the dictionary compiled into the binary.
func Default() (*Dictionary, error) {
	return Parse(defaultTable)
}

func (d *Dictionary) ItemName(id string) (string, error) {
	name, ok := d.items[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	return name, nil
}

func (d *Dictionary) CreatorName(id string) (string, error) {
	name, ok := d.creators[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCreator, id)
	}
	return name, nil
}
