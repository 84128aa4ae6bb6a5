// Package growable derives farm items from growable stage tables.
package growable

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/files"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/gamedata"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/items"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/names"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"
)

const GrowablesFile = "growables"

//go:embed growables.yaml
var defaultTable []byte

var (
	ErrLessThanOneDay     = errors.New("grows in less than one day")
	ErrCreatorUnavailable = errors.New("creator unavailable")
	ErrUnknownOutput      = errors.New("expected output not known")
	ErrDuplicateGrowable  = errors.New("multiple growables for item")
)

// Yield is the expected harvest of a growable farm.
type Yield struct {
	Item   string      `yaml:"item"`
	Output int         `yaml:"output"`
	Size   *items.Size `yaml:"size,omitempty"`
}

type Table struct {
	Creators map[string]string `yaml:"creators"`
	Outputs  map[string]Yield  `yaml:"outputs"`
}

func ParseTable(raw []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("growables.yaml: %w", err)
	}
	for id, y := range t.Outputs {
		if y.Output <= 0 {
			return t, fmt.Errorf("growables.yaml: %s: output must be > 0", id)
		}
		if y.Item == "" {
			return t, fmt.Errorf("growables.yaml: %s: missing item", id)
		}
	}
	return t, nil
}

func DefaultTable() (Table, error) {
	return ParseTable(defaultTable)
}

type Options struct {
	Dictionary       *names.Dictionary
	Table            Table
	DayLengthSeconds float64
}

// Derive maps growables onto farm items and appends the forester items.
func Derive(growables []gamedata.Growable, opts Options) ([]items.Item, error) {
	if opts.Dictionary == nil {
		return nil, fmt.Errorf("growable: nil dictionary")
	}
	if opts.DayLengthSeconds <= 0 {
		return nil, fmt.Errorf("growable: day length must be > 0")
	}

	out := make([]items.Item, 0, len(growables)+2)
	for _, g := range growables {
		days := len(g.Stages) - 1
		if days < 1 {
			return nil, fmt.Errorf("%s: %w", g.Identifier, ErrLessThanOneDay)
		}
		creatorID, ok := opts.Table.Creators[g.Identifier]
		if !ok {
			return nil, fmt.Errorf("%s: %w", g.Identifier, ErrCreatorUnavailable)
		}
		yield, ok := opts.Table.Outputs[g.Identifier]
		if !ok {
			return nil, fmt.Errorf("%s: %w", g.Identifier, ErrUnknownOutput)
		}
		name, err := opts.Dictionary.ItemName(yield.Item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.Identifier, err)
		}
		creator, err := opts.Dictionary.CreatorName(creatorID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.Identifier, err)
		}

		it := items.Item{
			Name:        name,
			Creator:     creator,
			CreateTime:  float64(days) * opts.DayLengthSeconds,
			Output:      yield.Output,
			Requires:    []items.Requirement{},
			MinimumTool: tooltier.None,
			MaximumTool: tooltier.None,
		}
		if yield.Size != nil {
			size := *yield.Size
			it.Size = &size
		}
		out = append(out, it)
	}

	trees, err := forestry(opts.Dictionary, opts.DayLengthSeconds)
	if err != nil {
		return nil, err
	}
	out = append(out, trees...)

	if dup, ok := items.FindDuplicate(out); ok {
		return nil, fmt.Errorf("%w: %s created by %s", ErrDuplicateGrowable, dup.Name, dup.Creator)
	}
	return out, nil
}

// Convert reads growables.json from inputDir and derives its items.
func Convert(ctx context.Context, inputDir string, opts Options) ([]items.Item, error) {
	path, err := files.FindOne(inputDir, files.FindOptions{Extension: "json", Exact: GrowablesFile})
	if err != nil {
		return nil, err
	}
	schema, err := gamedata.Schema(gamedata.Growables)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	growables, err := files.ReadJSON[[]gamedata.Growable](path, schema)
	if err != nil {
		return nil, err
	}
	return Derive(growables, opts)
}
