package gamedata

import (
	"encoding/json"
	"testing"
)

func TestSchemas_Compile(t *testing.T) {
	for _, k := range []Kind{Recipes, Toolsets, Blocks, Growables, Types, Locale} {
		if _, err := Schema(k); err != nil {
			t.Fatalf("compile %s: %v", k, err)
		}
	}
	if _, err := Schema("nope"); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}

func TestSchemas_ValidateSamples(t *testing.T) {
	validate := func(k Kind, raw string, wantOK bool) {
		t.Helper()
		s, err := Schema(k)
		if err != nil {
			t.Fatalf("compile %s: %v", k, err)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		err = s.Validate(v)
		if wantOK && err != nil {
			t.Fatalf("%s: validate: %v", k, err)
		}
		if !wantOK && err == nil {
			t.Fatalf("%s: expected validation failure for %s", k, raw)
		}
	}

	validate(Recipes, `[{"cooldown":10,"name":"pipliz.alchemist.poisondart","results":[{"type":"poisondart"}]}]`, true)
	validate(Recipes, `[{"cooldown":10,"name":"pipliz.alchemist.poisondart"}]`, false)
	validate(Recipes, `[{"cooldown":10,"name":"a.b.c","results":[{"type":"c","chance":1.5}]}]`, false)
	validate(Toolsets, `[{"key":"pipliz.default","usableTools":["notool","stone"]}]`, true)
	validate(Toolsets, `[{"key":"pipliz.default","usableTools":[]}]`, false)
	validate(Blocks, `[{"baseType":{"attachBehaviour":[{"npcType":"pipliz.miner","toolset":"pipliz.default"}]}}]`, true)
	validate(Growables, `[{"identifier":"wheat","stages":[{},{}]}]`, true)
	validate(Growables, `[{"identifier":"wheat"}]`, false)
	validate(Types, `{"stoneblock":{"minerMiningTime":8,"onRemoveType":"stonerubble"},"air":{}}`, true)
	validate(Types, `{"stoneblock":{"minerMiningTime":"slow"}}`, false)
	validate(Locale, `{"types":{"log":"Log"},"npcs":{"miner":"Miner"},"sentences":{}}`, true)
	validate(Locale, `{"types":{"log":1}}`, false)
}
