package pipeline

import (
	"context"
	"io"
	"log"

	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/config"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/files"
	"github.com/ashley-evans/colony-survival-calculator-sub001/internal/localisation"
)

type LocalisationOptions struct {
	InputDir   string
	OutputPath string
	Config     config.Config
	Static     localisation.Translations
	Logger     *log.Logger
}

// RunLocalisation merges the locale files under InputDir and writes the lookup
// to OutputPath. It reports whether the write succeeded.
func RunLocalisation(ctx context.Context, opts LocalisationOptions) (bool, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	merged, err := localisation.Merge(ctx, opts.InputDir, localisation.Options{
		ExpectedLocales: opts.Config.ExpectedLocales,
		MissingPrefix:   opts.Config.MissingTranslationPrefix,
		Static:          opts.Static,
		Logger:          logger,
	})
	if err != nil {
		return false, err
	}
	if !files.WriteJSON(opts.OutputPath, merged, logger) {
		return false, nil
	}
	logger.Printf("wrote %d items and %d creators to %s", len(merged.Items), len(merged.Creators), opts.OutputPath)
	return true, nil
}
