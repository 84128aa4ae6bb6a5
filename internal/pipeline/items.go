// Package pipeline sequences the converters into the two command runs: the
// item catalog and the localisation lookup.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/config"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/convert/craftable"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/convert/growable"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/convert/mineable"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/files"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/items"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/names"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/persistence/indexdb"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/persistence/report"
)

var ErrDuplicateItem = errors.New("defined in multiple sources")

// CatalogIndex receives the written catalog. *indexdb.SQLiteIndex implements it.
type CatalogIndex interface {
	RecordRun(ctx context.Context, run indexdb.Run, catalog []items.Item) error
}

// EventSink receives skipped recipes and pruned items. *report.Writer implements it.
type EventSink interface {
	Write(ev report.Event) error
}

type ItemOptions struct {
	InputDir   string
	OutputPath string
	Config     config.Config
	Dictionary *names.Dictionary
	Growables  growable.Table

	// Optional sinks.
	Index  CatalogIndex
	Report EventSink

	Logger *log.Logger
}

type ItemResult struct {
	RunID   string
	Items   []items.Item
	Skipped []craftable.Skip
	Removed []items.Removal
	Digest  string
	Written bool
}

// RunItems converts every item source under InputDir, prunes uncreatable items
// and writes the survivors to OutputPath. A run where nothing survives, or the
// write fails, returns Written=false without an error.
func RunItems(ctx context.Context, opts ItemOptions) (ItemResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Dictionary == nil {
		return ItemResult{}, fmt.Errorf("pipeline: nil dictionary")
	}
	cfg := opts.Config
	res := ItemResult{RunID: uuid.NewString()}

	var (
		crafted craftable.Result
		grown   []items.Item
		mined   []items.Item
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		crafted, err = craftable.Convert(gctx, opts.InputDir, craftable.Options{
			Dictionary:    opts.Dictionary,
			ExcludedFiles: cfg.ExcludedRecipeFiles,
			NoTool:        cfg.IsNoToolCreator,
			Logger:        logger,
		})
		return err
	})
	g.Go(func() error {
		var err error
		grown, err = growable.Convert(gctx, opts.InputDir, growable.Options{
			Dictionary:       opts.Dictionary,
			Table:            opts.Growables,
			DayLengthSeconds: cfg.DayLengthSeconds,
		})
		return err
	})
	g.Go(func() error {
		var err error
		mined, err = mineable.Convert(gctx, opts.InputDir, opts.Dictionary)
		return err
	})
	if err := g.Wait(); err != nil {
		return ItemResult{}, err
	}
	res.Skipped = crafted.Skipped

	combined := make([]items.Item, 0, len(crafted.Items)+len(grown)+len(mined))
	combined = append(combined, crafted.Items...)
	combined = append(combined, grown...)
	combined = append(combined, mined...)
	return publish(ctx, opts, res, combined, logger)
}

// publish checks and prunes the combined catalog, then writes it and feeds the
// optional sinks.
func publish(ctx context.Context, opts ItemOptions, res ItemResult, combined []items.Item, logger *log.Logger) (ItemResult, error) {
	if dup, ok := items.FindDuplicate(combined); ok {
		return ItemResult{}, fmt.Errorf("item %s created by %s %w", dup.Name, dup.Creator, ErrDuplicateItem)
	}

	kept, removed := items.Prune(combined)
	res.Items, res.Removed = kept, removed
	for _, r := range removed {
		logger.Printf("removing %s created by %s: requires %s which cannot be created", r.Item.Name, r.Item.Creator, r.Missing)
	}
	if err := emitEvents(opts.Report, res); err != nil {
		return ItemResult{}, fmt.Errorf("report: %w", err)
	}
	if len(kept) == 0 {
		logger.Printf("no creatable items found in %s", opts.InputDir)
		return res, nil
	}

	b, err := files.Encode(kept)
	if err != nil {
		return ItemResult{}, err
	}
	sum := sha256.Sum256(b)
	res.Digest = hex.EncodeToString(sum[:])

	if !files.WriteJSON(opts.OutputPath, kept, logger) {
		return res, nil
	}
	res.Written = true
	logger.Printf("wrote %d items to %s (sha256 %s)", len(kept), opts.OutputPath, res.Digest)

	if opts.Index != nil {
		run := indexdb.Run{
			ID:         res.RunID,
			RecordedAt: time.Now(),
			InputDir:   opts.InputDir,
			OutputPath: opts.OutputPath,
			Digest:     res.Digest,
		}
		if err := opts.Index.RecordRun(ctx, run, kept); err != nil {
			return res, fmt.Errorf("index: %w", err)
		}
	}
	return res, nil
}

func emitEvents(sink EventSink, res ItemResult) error {
	if sink == nil {
		return nil
	}
	for _, s := range res.Skipped {
		ev := report.Event{
			RunID:   res.RunID,
			Kind:    report.KindSkippedRecipe,
			Name:    s.Recipe,
			Creator: s.Creator,
			Reason:  s.Reason,
		}
		if err := sink.Write(ev); err != nil {
			return err
		}
	}
	for _, r := range res.Removed {
		ev := report.Event{
			RunID:   res.RunID,
			Kind:    report.KindPrunedItem,
			Name:    r.Item.Name,
			Creator: r.Item.Creator,
			Reason:  "requires " + r.Missing,
		}
		if err := sink.Write(ev); err != nil {
			return err
		}
	}
	return nil
}
