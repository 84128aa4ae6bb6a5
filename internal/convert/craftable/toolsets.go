package craftable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/gamedata"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"
)

var ErrUnknownToolset = errors.New("unknown toolset")

// CreatorTools maps creator ids to the raw tools their toolset permits.
type CreatorTools struct {
	bound  map[string][]tooltier.RawTool
	noTool func(creator string) bool
}

// BuildCreatorTools binds every creator named by a block behaviour to its
// toolset. The first binding seen for a creator wins. Creators without a
// binding use BasicTools, or only NoTool when noTool reports true.
func BuildCreatorTools(toolsets []gamedata.Toolset, blocks []gamedata.Block, noTool func(creator string) bool) (CreatorTools, error) {
	byKey := make(map[string][]tooltier.RawTool, len(toolsets))
	for _, ts := range toolsets {
		if _, ok := byKey[ts.Key]; ok {
			return CreatorTools{}, fmt.Errorf("toolsets.json: duplicate toolset %q", ts.Key)
		}
		byKey[ts.Key] = ts.UsableTools
	}

	bound := map[string][]tooltier.RawTool{}
	for _, b := range blocks {
		for _, bh := range b.BaseType.AttachBehaviour {
			if bh.NPCType == "" || bh.Toolset == "" {
				continue
			}
			creator := creatorID(bh.NPCType)
			if _, ok := bound[creator]; ok {
				continue
			}
			tools, ok := byKey[bh.Toolset]
			if !ok {
				return CreatorTools{}, fmt.Errorf("%w: %s required by %s", ErrUnknownToolset, bh.Toolset, creator)
			}
			bound[creator] = tools
		}
	}
	if noTool == nil {
		noTool = func(string) bool { return false }
	}
	return CreatorTools{bound: bound, noTool: noTool}, nil
}

func (c CreatorTools) Tools(creator string) []tooltier.RawTool {
	if tools, ok := c.bound[creator]; ok {
		return tools
	}
	if c.noTool != nil && c.noTool(creator) {
		return []tooltier.RawTool{tooltier.NoTool}
	}
	return tooltier.BasicTools
}

// creatorID strips the namespace of an npc type ("pipliz.miner" -> "miner").
func creatorID(npcType string) string {
	if i := strings.LastIndex(npcType, "."); i >= 0 {
		return npcType[i+1:]
	}
	return npcType
}
