// Package items defines the canonical item record shared by every converter,
// together with the catalog wide duplicate and creatability checks.
package items

import "github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"

type Requirement struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type OptionalOutput struct {
	Name       string  `json:"name"`
	Amount     int     `json:"amount"`
	Likelihood float64 `json:"likelihood"`
}

// Size is the footprint of a farm producing the item.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Item struct {
	Name            string           `json:"name"`
	Creator         string           `json:"creator"`
	CreateTime      float64          `json:"createTime"`
	Output          int              `json:"output"`
	Requires        []Requirement    `json:"requires"`
	MinimumTool     tooltier.Tier    `json:"minimumTool"`
	MaximumTool     tooltier.Tier    `json:"maximumTool"`
	OptionalOutputs []OptionalOutput `json:"optionalOutputs,omitempty"`
	Size            *Size            `json:"size,omitempty"`
}

// Key identifies an item across the whole catalog.
type Key struct {
	Name    string
	Creator string
}

func (it Item) Key() Key { return Key{Name: it.Name, Creator: it.Creator} }

// FindDuplicate returns the first (name, creator) pair defined more than once.
func FindDuplicate(list []Item) (Key, bool) {
	seen := make(map[Key]struct{}, len(list))
	for _, it := range list {
		k := it.Key()
		if _, ok := seen[k]; ok {
			return k, true
		}
		seen[k] = struct{}{}
	}
	return Key{}, false
}
