package files

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFind_Filters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "toolsets.json"), "[]")
	writeFile(t, filepath.Join(dir, "recipes_alchemist.json"), "[]")
	writeFile(t, filepath.Join(dir, "nested", "recipes_baker.json"), "[]")
	writeFile(t, filepath.Join(dir, "recipes_notes.txt"), "")

	got, err := Find(dir, FindOptions{Extension: "json", Prefix: "recipes_"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("prefix matches=%v want 2", got)
	}
	for _, p := range got {
		if !filepath.IsAbs(p) {
			t.Fatalf("expected absolute path, got %s", p)
		}
	}

	got, err = Find(dir, FindOptions{Extension: ".json", Exact: "toolsets"})
	if err != nil || len(got) != 1 || filepath.Base(got[0]) != "toolsets.json" {
		t.Fatalf("exact match got=%v err=%v", got, err)
	}

	got, err = Find(dir, FindOptions{Extension: "json"})
	if err != nil || len(got) != 3 {
		t.Fatalf("extension only got=%v err=%v", got, err)
	}

	got, err = Find(dir, FindOptions{Exact: "missing"})
	if err != nil || len(got) != 0 {
		t.Fatalf("no match should be empty, got=%v err=%v", got, err)
	}
}

func TestFind_RootErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(filepath.Join(dir, "nope"), FindOptions{}); err == nil {
		t.Fatalf("expected error for missing root")
	}
	file := filepath.Join(dir, "file.json")
	writeFile(t, file, "{}")
	if _, err := Find(file, FindOptions{}); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
	if _, err := Find(dir, FindOptions{Exact: "a", Prefix: "b"}); !errors.Is(err, ErrConflictingName) {
		t.Fatalf("expected ErrConflictingName, got %v", err)
	}
}

func compileSchema(t *testing.T, raw string) *jsonschema.Schema {
	t.Helper()
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	url := "https://colony-survival-calculator.local/test.schema.json"
	if err := c.AddResource(url, strings.NewReader(raw)); err != nil {
		t.Fatalf("add resource: %v", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return s
}

type sample struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

func TestReadJSON_CommentsAndValidation(t *testing.T) {
	dir := t.TempDir()
	schema := compileSchema(t, `{"type":"object","required":["key"],"properties":{"key":{"type":"string"},"count":{"type":"integer"}}}`)

	ok := filepath.Join(dir, "ok.json")
	writeFile(t, ok, "{\n  // line comment\n  \"key\": \"a\", /* block */ \"count\": 3\n}")
	got, err := ReadJSON[sample](ok, schema)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Key != "a" || got.Count != 3 {
		t.Fatalf("got=%+v", got)
	}

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"count": 1}`)
	if _, err := ReadJSON[sample](bad, schema); err == nil {
		t.Fatalf("expected schema validation failure")
	}

	txt := filepath.Join(dir, "data.txt")
	writeFile(t, txt, `{"key":"a"}`)
	if _, err := ReadJSON[sample](txt, schema); !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON, got %v", err)
	}

	if _, err := ReadJSON[sample](filepath.Join(dir, "missing.json"), schema); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	logger := log.New(io.Discard, "", 0)
	path := filepath.Join(dir, "out", "items.json")

	if !WriteJSON(path, []sample{{Key: "x", Count: 1}}, logger) {
		t.Fatalf("expected write success")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got []sample
	if err := json.Unmarshal(b, &got); err != nil || len(got) != 1 || got[0].Key != "x" {
		t.Fatalf("round trip got=%+v err=%v", got, err)
	}
	want, err := Encode([]sample{{Key: "x", Count: 1}})
	if err != nil || string(b) != string(want) {
		t.Fatalf("file=%q want Encode output %q (err=%v)", b, want, err)
	}

	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, "")
	if WriteJSON(filepath.Join(blocker, "items.json"), 1, logger) {
		t.Fatalf("expected failure writing beneath a regular file")
	}
	if WriteJSON(filepath.Join(dir, "chan.json"), make(chan int), logger) {
		t.Fatalf("expected marshal failure")
	}
}

func TestReadAll_KeepsOrderAndFailsWholeBatch(t *testing.T) {
	dir := t.TempDir()
	schema := compileSchema(t, `{"type":"object","required":["key"]}`)
	var paths []string
	for i, key := range []string{"a", "b", "c"} {
		p := filepath.Join(dir, string(rune('0'+i))+".json")
		writeFile(t, p, `{"key":"`+key+`"}`)
		paths = append(paths, p)
	}
	got, err := ReadAll[sample](context.Background(), paths, schema)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(got) != 3 || got[0].Key != "a" || got[2].Key != "c" {
		t.Fatalf("got=%+v", got)
	}

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{}`)
	got, err = ReadAll[sample](context.Background(), append(paths, bad), schema)
	if err == nil || got != nil {
		t.Fatalf("expected batch failure, got=%+v err=%v", got, err)
	}
}

func TestFindOne(t *testing.T) {
	dir := t.TempDir()
	if _, err := FindOne(dir, FindOptions{Extension: "json", Exact: "types"}); !errors.Is(err, ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
	writeFile(t, filepath.Join(dir, "types.json"), "{}")
	p, err := FindOne(dir, FindOptions{Extension: "json", Exact: "types"})
	if err != nil || filepath.Base(p) != "types.json" {
		t.Fatalf("got=%s err=%v", p, err)
	}
	writeFile(t, filepath.Join(dir, "more", "types.json"), "{}")
	if _, err := FindOne(dir, FindOptions{Extension: "json", Exact: "types"}); !errors.Is(err, ErrMultipleFiles) {
		t.Fatalf("expected ErrMultipleFiles, got %v", err)
	}
}
