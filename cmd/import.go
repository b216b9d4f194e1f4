package cmd

import (
	"fmt"
	"os"

	"locale-manager/feature/localization"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFetch   bool
	importRemove  bool
	importProject string
)

// importCmd applies translated exchange files.
var importCmd = &cobra.Command{
	Use:   "import [app] [file]",
	Short: "Apply translated texts from a CSV exchange file",
	Long: `Applies the translated texts of a CSV exchange file by key. Rows for unknown
keys are rejected and reported; no record is ever created.
With --fetch every hand-off file of the application is imported from the bucket.
With --project the translated Localizable.strings files of a project tree are
imported, e.g. texts translated by hand in the project.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importFetch, "fetch", false, "Import the hand-off files from the bucket")
	importCmd.Flags().BoolVar(&importRemove, "remove", false, "Remove fetched files once imported")
	importCmd.Flags().StringVar(&importProject, "project", "", "Import the translated strings files of a project directory")
	addWriteFlags(importCmd)
	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	appID := args[0]
	if importFetch && importProject != "" {
		return fmt.Errorf("--fetch and --project cannot be combined")
	}
	if !importFetch && importProject == "" && len(args) != 2 {
		return fmt.Errorf("a file is required unless --fetch or --project is set")
	}

	e, err := setup()
	if err != nil {
		return err
	}
	l := e.logger.With(zap.String("app", appID))

	opts := confirmedOptions(l)
	if !opts.Confirmed && !opts.DryRun {
		return nil
	}

	var outcomes []*localization.ImportOutcome
	switch {
	case importFetch:
		outcomes, err = e.service.Fetch(ctx, appID, opts, importRemove)
		if err != nil {
			return err
		}
	case importProject != "":
		outcome, err := e.service.ImportProject(ctx, appID, importProject, opts)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, outcome)
	default:
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[1], err)
		}
		outcome, err := e.service.Import(ctx, appID, data, opts)
		if err != nil {
			return err
		}
		outcome.Source = args[1]
		outcomes = append(outcomes, outcome)
	}

	for _, o := range outcomes {
		l.Info("Import finished",
			zap.String("source", o.Source),
			zap.Int("received", o.Received),
			zap.Int("skipped", o.Skipped),
			zap.Int("applied", len(o.Applied)),
			zap.Int("written", o.Written))
		for _, err := range o.Errors {
			l.Warn("Rejected row", zap.Error(err))
		}
	}
	return nil
}
