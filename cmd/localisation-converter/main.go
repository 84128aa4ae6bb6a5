// Command localisation-converter merges the game's locale files into one
// translation lookup.
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
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/localisation"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("localisation-converter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		inputDir   = fs.String("input", "", "directory containing the localization folder")
		outputPath = fs.String("output", "", "path of the translation lookup to write")
		configPath = fs.String("config", "", "path to converter.yaml (optional)")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if strings.TrimSpace(*inputDir) == "" || strings.TrimSpace(*outputPath) == "" {
		fmt.Fprintln(stderr, "missing -input or -output")
		return 1
	}

	logger := log.New(stdout, "[localisation-converter] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "load config:", err)
		return 1
	}
	static, err := localisation.DefaultStatic()
	if err != nil {
		fmt.Fprintln(stderr, "load static translations:", err)
		return 1
	}

	ok, err := pipeline.RunLocalisation(ctx, pipeline.LocalisationOptions{
		InputDir:   *inputDir,
		OutputPath: *outputPath,
		Config:     cfg,
		Static:     static,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if !ok {
		return 1
	}
	return 0
}
