package files

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tailscale/hujson"
	"golang.org/x/sync/errgroup"
)

var ErrNotJSON = errors.New("not a .json file")

// ReadJSON parses path into T after validating it against schema. Line and
// block comments are accepted in the file.
func ReadJSON[T any](path string, schema *jsonschema.Schema) (T, error) {
	var out T
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".json") {
		return out, fmt.Errorf("%s: %w", name, ErrNotJSON)
	}
	if schema == nil {
		return out, fmt.Errorf("%s: nil schema", name)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}

	var doc any
	if err := json.Unmarshal(std, &doc); err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	if err := schema.Validate(doc); err != nil {
		return out, fmt.Errorf("%s: schema validation failed: %w", name, err)
	}
	if err := json.Unmarshal(std, &out); err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// WriteJSON writes v as indented JSON, creating parent directories. Failures
// are logged and reported through the return value.
func WriteJSON(path string, v any, logger *log.Logger) bool {
	b, err := Encode(v)
	if err != nil {
		logger.Printf("write %s: marshal: %v", path, err)
		return false
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Printf("write %s: %v", path, err)
			return false
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		logger.Printf("write %s: %v", path, err)
		return false
	}
	return true
}

// Encode returns the exact bytes WriteJSON writes for v.
func Encode(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// ReadAll reads every path concurrently. Results keep the order of paths; the
// first failure cancels the batch and nothing is returned.
func ReadAll[T any](ctx context.Context, paths []string, schema *jsonschema.Schema) ([]T, error) {
	out := make([]T, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := ReadJSON[T](p, schema)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
