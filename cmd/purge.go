package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// purgeCmd deletes orphaned records.
var purgeCmd = &cobra.Command{
	Use:   "purge [app]",
	Short: "Delete records whose keys are no longer extracted",
	Long: `Extracts the project again and deletes the stored records of keys that are
no longer present in it. Nothing else is touched.

Examples:
  purge shop --project ./ios --dry-run
  purge shop --project ./ios --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().StringVar(&projectDir, "project", ".", "Project directory holding the .lproj folders")
	purgeCmd.Flags().StringVar(&sourceLocale, "source-locale", "", "Locale to extract from (defaults to localization.source_lang)")
	addWriteFlags(purgeCmd)
	RootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	appID := args[0]

	e, err := setup()
	if err != nil {
		return err
	}
	l := e.logger.With(zap.String("app", appID))

	ex, err := projectExtractor(e)
	if err != nil {
		return err
	}

	orphans, err := e.service.Orphans(ctx, appID, ex)
	if err != nil {
		return err
	}
	if len(orphans) == 0 {
		l.Info("No orphaned records.")
		return nil
	}
	for _, k := range orphans {
		l.Info("Orphaned record", zap.Stringer("key", k))
	}

	opts := confirmedOptions(l)
	if !opts.Confirmed {
		return nil
	}

	_, deleted, err := e.service.Purge(ctx, appID, ex, opts)
	if err != nil {
		return err
	}
	l.Info("Successfully purged records", zap.Int64("count", deleted))
	return nil
}
