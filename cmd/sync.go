package cmd

import (
	"fmt"

	"locale-manager/core/extract"
	"locale-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	projectDir   string
	sourceLocale string
)

// syncCmd reconciles the strings of a project with the stored set.
var syncCmd = &cobra.Command{
	Use:   "sync [app]",
	Short: "Reconcile extracted strings with the stored records",
	Long: `Extracts the source strings of a project, fans them out to every target locale
and reconciles them with the stored records of the application.

New keys are added awaiting translation, changed source texts reset their
translation, and keys no longer extracted are reported as orphans but kept.

Examples:
  # Report only
  sync shop --project ./ios --dry-run

  # Write with auto-confirm (non-interactive)
  sync shop --project ./ios --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&projectDir, "project", ".", "Project directory holding the .lproj folders")
	syncCmd.Flags().StringVar(&sourceLocale, "source-locale", "", "Locale to extract from (defaults to localization.source_lang)")
	addWriteFlags(syncCmd)
	RootCmd.AddCommand(syncCmd)
}

// projectExtractor builds the extractor for --project and --source-locale.
func projectExtractor(e *env) (*extract.ProjectExtractor, error) {
	source := sourceLocale
	if source == "" {
		source = e.cfg.Localization.SourceLang
	}
	return extract.NewProjectExtractor(projectDir, source)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	appID := args[0]

	e, err := setup()
	if err != nil {
		return err
	}
	l := e.logger.With(zap.String("app", appID))

	if err := e.store.VerifySchema(ctx); err != nil {
		return fmt.Errorf("schema check failed, run 'migrate' first: %w", err)
	}

	ex, err := projectExtractor(e)
	if err != nil {
		return err
	}

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...", zap.String("project", projectDir))
	plan, err := e.service.Sync(ctx, appID, ex, reconcile.Options{DryRun: true})
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printReport(l, plan.Report)

	if !plan.Report.HasChanges() {
		l.Info("Stored records are up to date.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	opts := confirmedOptions(l)
	if !opts.Confirmed {
		return nil
	}

	plan, err = e.service.Sync(ctx, appID, ex, opts)
	if err != nil {
		return fmt.Errorf("failed to apply reconciliation: %w", err)
	}

	l.Info("Reconciliation written",
		zap.Int("records", len(plan.Merged)),
		zap.Int("awaiting_translation", len(plan.NeedsTranslation)))
	return nil
}
