// Command item-converter turns the game's definition files into the item
// catalog used by the calculator.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/config"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/convert/growable"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/names"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/persistence/indexdb"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/persistence/report"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("item-converter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		inputDir   = fs.String("input", "", "directory containing the game definition files")
		outputPath = fs.String("output", "", "path of the item catalog to write")
		configPath = fs.String("config", "", "path to converter.yaml (optional)")
		indexPath  = fs.String("index", "", "SQLite catalog index to record the run in (optional)")
		reportPath = fs.String("report", "", "zstd JSONL report of skipped and pruned items (optional)")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if strings.TrimSpace(*inputDir) == "" || strings.TrimSpace(*outputPath) == "" {
		fmt.Fprintln(stderr, "missing -input or -output")
		return 1
	}

	logger := log.New(stdout, "[item-converter] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "load config:", err)
		return 1
	}
	dict, err := names.Default()
	if err != nil {
		fmt.Fprintln(stderr, "load names:", err)
		return 1
	}
	table, err := growable.DefaultTable()
	if err != nil {
		fmt.Fprintln(stderr, "load growables table:", err)
		return 1
	}

	opts := pipeline.ItemOptions{
		InputDir:   *inputDir,
		OutputPath: *outputPath,
		Config:     cfg,
		Dictionary: dict,
		Growables:  table,
		Logger:     logger,
	}
	if p := strings.TrimSpace(*indexPath); p != "" {
		idx, err := indexdb.OpenSQLite(p)
		if err != nil {
			fmt.Fprintln(stderr, "open index:", err)
			return 1
		}
		defer idx.Close()
		opts.Index = idx
	}
	if p := strings.TrimSpace(*reportPath); p != "" {
		rep, err := report.Create(p)
		if err != nil {
			fmt.Fprintln(stderr, "open report:", err)
			return 1
		}
		defer func() {
			if err := rep.Close(); err != nil {
				logger.Printf("close report: %v", err)
			}
		}()
		opts.Report = rep
	}

	res, err := pipeline.RunItems(ctx, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if !res.Written {
		return 1
	}
	logger.Printf("run %s: %d items, %d skipped recipes, %d pruned", res.RunID, len(res.Items), len(res.Skipped), len(res.Removed))
	return 0
}
