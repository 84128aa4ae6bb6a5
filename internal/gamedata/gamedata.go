// Package gamedata holds the raw record shapes of the game definition files
// and the JSON schemas they are validated against.
package gamedata

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Kind names one family of input file.
type Kind string

const (
	Recipes   Kind = "recipes"
	Toolsets  Kind = "toolsets"
	Blocks    Kind = "blocks"
	Growables Kind = "growables"
	Types     Kind = "types"
	Locale    Kind = "locale"
)

type RecipeRequirement struct {
	Type   string `json:"type"`
	Amount *int   `json:"amount,omitempty"`
}

type RecipeResult struct {
	Type       string   `json:"type"`
	Amount     *int     `json:"amount,omitempty"`
	IsOptional *bool    `json:"isOptional,omitempty"`
	Chance     *float64 `json:"chance,omitempty"`
}

// Recipe is one entry of a recipes_*.json file. Name is "<namespace>.<creator>.<item>".
type Recipe struct {
	Cooldown float64             `json:"cooldown"`
	Name     string              `json:"name"`
	Requires []RecipeRequirement `json:"requires,omitempty"`
	Results  []RecipeResult      `json:"results"`
}

type Toolset struct {
	Key         string             `json:"key"`
	UsableTools []tooltier.RawTool `json:"usableTools"`
}

type Behaviour struct {
	NPCType string `json:"npcType,omitempty"`
	Toolset string `json:"toolset,omitempty"`
}

type BlockBaseType struct {
	AttachBehaviour []Behaviour `json:"attachBehaviour,omitempty"`
}

// Block is one entry of a generateblocks*.json file.
type Block struct {
	TypeName string        `json:"typeName,omitempty"`
	BaseType BlockBaseType `json:"baseType"`
}

type Growable struct {
	Identifier string           `json:"identifier"`
	Stages     []map[string]any `json:"stages"`
}

// MineableType is one value of types.json; both fields are optional in the file.
type MineableType struct {
	MinerMiningTime *float64 `json:"minerMiningTime,omitempty"`
	OnRemoveType    *string  `json:"onRemoveType,omitempty"`
}

type LocaleFile struct {
	Types map[string]string `json:"types,omitempty"`
	NPCs  map[string]string `json:"npcs,omitempty"`
}

var (
	schemaMu    sync.Mutex
	schemaCache = map[Kind]*jsonschema.Schema{}
)

// Schema returns the compiled schema for a kind of input file.
func Schema(kind Kind) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if s, ok := schemaCache[kind]; ok {
		return s, nil
	}

	name := string(kind) + ".schema.json"
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", kind, err)
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	schemaURL := "https://colony-survival-calculator.local/schemas/" + name
	if err := c.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("schema %s load failed: %w", kind, err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("schema %s compile failed: %w", kind, err)
	}
	schemaCache[kind] = s
	return s, nil
}
