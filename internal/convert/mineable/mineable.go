// Package mineable derives miner items from the block type table.
package mineable

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/files"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/gamedata"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/items"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/names"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"
)

const (
	TypesFile = "types"
	minerID   = "miner"
)

var ErrDuplicateMineable = errors.New("multiple mineable definitions for item")

// Derive turns every type with both a mining time and a removal product into
// a miner item. Other types are ignored.
func Derive(types map[string]gamedata.MineableType, dict *names.Dictionary) ([]items.Item, error) {
	if dict == nil {
		return nil, fmt.Errorf("mineable: nil dictionary")
	}
	keys := make([]string, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var creator string
	out := make([]items.Item, 0, len(keys))
	for _, k := range keys {
		t := types[k]
		if t.MinerMiningTime == nil || t.OnRemoveType == nil {
			continue
		}
		if creator == "" {
			c, err := dict.CreatorName(minerID)
			if err != nil {
				return nil, err
			}
			creator = c
		}
		name, err := dict.ItemName(*t.OnRemoveType)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out = append(out, items.Item{
			Name:        name,
			Creator:     creator,
			CreateTime:  *t.MinerMiningTime,
			Output:      1,
			Requires:    []items.Requirement{},
			MinimumTool: tooltier.None,
			MaximumTool: tooltier.Steel,
		})
	}

	if dup, ok := items.FindDuplicate(out); ok {
		return nil, fmt.Errorf("%w: %s created by %s", ErrDuplicateMineable, dup.Name, dup.Creator)
	}
	return out, nil
}

// Convert reads types.json from inputDir and derives its miner items.
func Convert(ctx context.Context, inputDir string, dict *names.Dictionary) ([]items.Item, error) {
	path, err := files.FindOne(inputDir, files.FindOptions{Extension: "json", Exact: TypesFile})
	if err != nil {
		return nil, err
	}
	schema, err := gamedata.Schema(gamedata.Types)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	types, err := files.ReadJSON[map[string]gamedata.MineableType](path, schema)
	if err != nil {
		return nil, err
	}
	return Derive(types, dict)
}
