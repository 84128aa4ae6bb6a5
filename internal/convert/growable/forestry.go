package growable

import (
	"fmt"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/items"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/names"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"
)

// A forester plot yields logs and leaves from the same felled tree. The game
// only expresses this as a drop table, so the expected byproduct of each is
// precomputed here.
const (
	foresterID   = "forester"
	logID        = "log"
	leavesID     = "leaves"
	logsPerTree  = 4
	leavesByTree = 2

	leavesPerLogHarvest = 2
	leavesLikelihood    = 0.5
	logsPerLeafHarvest  = 1
	logLikelihood       = 0.25
)

var foresterSize = items.Size{Width: 5, Height: 5}

func forestry(dict *names.Dictionary, dayLength float64) ([]items.Item, error) {
	logName, err := dict.ItemName(logID)
	if err != nil {
		return nil, fmt.Errorf("forester: %w", err)
	}
	leavesName, err := dict.ItemName(leavesID)
	if err != nil {
		return nil, fmt.Errorf("forester: %w", err)
	}
	creator, err := dict.CreatorName(foresterID)
	if err != nil {
		return nil, fmt.Errorf("forester: %w", err)
	}

	tree := func(name string, output int, byproduct items.OptionalOutput) items.Item {
		size := foresterSize
		return items.Item{
			Name:            name,
			Creator:         creator,
			CreateTime:      dayLength,
			Output:          output,
			Requires:        []items.Requirement{},
			MinimumTool:     tooltier.None,
			MaximumTool:     tooltier.None,
			OptionalOutputs: []items.OptionalOutput{byproduct},
			Size:            &size,
		}
	}
	return []items.Item{
		tree(logName, logsPerTree, items.OptionalOutput{Name: leavesName, Amount: leavesPerLogHarvest, Likelihood: leavesLikelihood}),
		tree(leavesName, leavesByTree, items.OptionalOutput{Name: logName, Amount: logsPerLeafHarvest, Likelihood: logLikelihood}),
	}, nil
}
