package craftable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/gamedata"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/items"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/names"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"
)

var (
	ErrMalformedName          = errors.New("malformed recipe name")
	ErrNoPrimaryOutput        = errors.New("no primary output")
	ErrMultiplePrimaryOutputs = errors.New("multiple primary outputs")
	ErrOptionalPrimaryOutput  = errors.New("primary output marked optional")
)

// SplitName splits "<namespace>.<creator>.<item>" into creator and item ids.
func SplitName(qualified string) (creator, item string, err error) {
	parts := strings.Split(qualified, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedName, qualified)
	}
	return parts[1], parts[2], nil
}

// MapRecipe converts one raw recipe into a canonical item. An error matching
// tooltier.IsUnsupported means the recipe should be skipped; every other
// error is fatal.
func MapRecipe(r gamedata.Recipe, tools CreatorTools, dict *names.Dictionary) (items.Item, error) {
	creatorID, itemID, err := SplitName(r.Name)
	if err != nil {
		return items.Item{}, err
	}

	bounds, err := tooltier.Resolve(tools.Tools(creatorID))
	if err != nil {
		return items.Item{}, fmt.Errorf("%s: %w", r.Name, err)
	}

	var primary []gamedata.RecipeResult
	var optional []gamedata.RecipeResult
	for _, res := range r.Results {
		if res.Type == itemID {
			primary = append(primary, res)
			continue
		}
		optional = append(optional, res)
	}
	switch {
	case len(primary) == 0:
		return items.Item{}, fmt.Errorf("%s: %w", r.Name, ErrNoPrimaryOutput)
	case len(primary) > 1:
		return items.Item{}, fmt.Errorf("%s: %w", r.Name, ErrMultiplePrimaryOutputs)
	case primary[0].IsOptional != nil && *primary[0].IsOptional:
		return items.Item{}, fmt.Errorf("%s: %w", r.Name, ErrOptionalPrimaryOutput)
	}

	name, err := dict.ItemName(itemID)
	if err != nil {
		return items.Item{}, fmt.Errorf("%s: %w", r.Name, err)
	}
	creator, err := dict.CreatorName(creatorID)
	if err != nil {
		return items.Item{}, fmt.Errorf("%s: %w", r.Name, err)
	}

	requires := make([]items.Requirement, 0, len(r.Requires))
	for _, req := range r.Requires {
		reqName, err := dict.ItemName(req.Type)
		if err != nil {
			return items.Item{}, fmt.Errorf("%s: requirement: %w", r.Name, err)
		}
		requires = append(requires, items.Requirement{Name: reqName, Amount: amountOrOne(req.Amount)})
	}

	var outputs []items.OptionalOutput
	for _, res := range optional {
		outName, err := dict.ItemName(res.Type)
		if err != nil {
			return items.Item{}, fmt.Errorf("%s: optional output: %w", r.Name, err)
		}
		likelihood := 1.0
		if res.Chance != nil {
			likelihood = *res.Chance
		}
		outputs = append(outputs, items.OptionalOutput{
			Name:       outName,
			Amount:     amountOrOne(res.Amount),
			Likelihood: likelihood,
		})
	}

	return items.Item{
		Name:            name,
		Creator:         creator,
		CreateTime:      r.Cooldown,
		Output:          amountOrOne(primary[0].Amount),
		Requires:        requires,
		MinimumTool:     bounds.Minimum,
		MaximumTool:     bounds.Maximum,
		OptionalOutputs: outputs,
	}, nil
}

func amountOrOne(v *int) int {
	if v == nil {
		return 1
	}
	return *v
}
