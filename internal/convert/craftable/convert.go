// Package craftable converts the recipe files of craftable items.
package craftable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/files"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/gamedata"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/items"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/names"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/tooltier"
)

const (
	ToolsetsFile  = "toolsets"
	BlocksPrefix  = "generateblocks"
	RecipesPrefix = "recipes_"
)

var ErrDuplicateRecipe = errors.New("multiple recipes for item")

type Options struct {
	Dictionary    *names.Dictionary
	ExcludedFiles []string
	NoTool        func(creator string) bool
	Logger        *log.Logger
}

// Skip records a recipe left out because its creator needs an unsupported toolset.
type Skip struct {
	Recipe  string
	Creator string
	Reason  string
}

type Result struct {
	Items   []items.Item
	Skipped []Skip
}

func Convert(ctx context.Context, inputDir string, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Dictionary == nil {
		return Result{}, fmt.Errorf("craftable: nil dictionary")
	}

	toolsetsPath, err := files.FindOne(inputDir, files.FindOptions{Extension: "json", Exact: ToolsetsFile})
	if err != nil {
		return Result{}, err
	}
	blockPaths, err := files.Find(inputDir, files.FindOptions{Extension: "json", Prefix: BlocksPrefix})
	if err != nil {
		return Result{}, err
	}
	recipePaths, err := files.Find(inputDir, files.FindOptions{Extension: "json", Prefix: RecipesPrefix})
	if err != nil {
		return Result{}, err
	}
	recipePaths = exclude(recipePaths, opts.ExcludedFiles)

	toolsetSchema, err := gamedata.Schema(gamedata.Toolsets)
	if err != nil {
		return Result{}, err
	}
	blockSchema, err := gamedata.Schema(gamedata.Blocks)
	if err != nil {
		return Result{}, err
	}
	recipeSchema, err := gamedata.Schema(gamedata.Recipes)
	if err != nil {
		return Result{}, err
	}

	var (
		toolsets   []gamedata.Toolset
		blockFiles [][]gamedata.Block
		recipeSets [][]gamedata.Recipe
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		toolsets, err = files.ReadJSON[[]gamedata.Toolset](toolsetsPath, toolsetSchema)
		return err
	})
	g.Go(func() error {
		var err error
		blockFiles, err = files.ReadAll[[]gamedata.Block](gctx, blockPaths, blockSchema)
		return err
	})
	g.Go(func() error {
		var err error
		recipeSets, err = files.ReadAll[[]gamedata.Recipe](gctx, recipePaths, recipeSchema)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var blocks []gamedata.Block
	for _, bf := range blockFiles {
		blocks = append(blocks, bf...)
	}
	tools, err := BuildCreatorTools(toolsets, blocks, opts.NoTool)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for i, recipes := range recipeSets {
		file := filepath.Base(recipePaths[i])
		for _, r := range recipes {
			it, err := MapRecipe(r, tools, opts.Dictionary)
			if err != nil {
				if tooltier.IsUnsupported(err) {
					creator, _, _ := SplitName(r.Name)
					logger.Printf("skipping recipe %s: %v", r.Name, err)
					res.Skipped = append(res.Skipped, Skip{Recipe: r.Name, Creator: creator, Reason: err.Error()})
					continue
				}
				return Result{}, fmt.Errorf("%s: %w", file, err)
			}
			res.Items = append(res.Items, it)
		}
	}

	if dup, ok := items.FindDuplicate(res.Items); ok {
		return Result{}, fmt.Errorf("%w: %s created by %s", ErrDuplicateRecipe, dup.Name, dup.Creator)
	}
	return res, nil
}

func exclude(paths, excluded []string) []string {
	if len(excluded) == 0 {
		return paths
	}
	skip := make(map[string]struct{}, len(excluded))
	for _, n := range excluded {
		skip[n] = struct{}{}
	}
	out := paths[:0:0]
	for _, p := range paths {
		if _, ok := skip[filepath.Base(p)]; ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
