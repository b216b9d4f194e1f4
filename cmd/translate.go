package cmd

import (
	"fmt"

	"locale-manager/core/translate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// translateCmd machine-translates pending records.
var translateCmd = &cobra.Command{
	Use:   "translate [app]",
	Short: "Machine-translate records awaiting translation",
	Long: `Sends every record awaiting translation to the Cloud Translation API and stores
the results. Texts that fail to translate stay pending.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	addWriteFlags(translateCmd)
	RootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	appID := args[0]

	e, err := setup()
	if err != nil {
		return err
	}
	l := e.logger.With(zap.String("app", appID))

	tr, err := translate.NewGoogleTranslator(ctx, e.cfg.Translation, e.logger)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	opts := confirmedOptions(l)
	if !opts.Confirmed && !opts.DryRun {
		return nil
	}

	outcome, err := e.service.Translate(ctx, appID, tr, opts)
	if err != nil {
		return err
	}

	for _, f := range outcome.Failures {
		l.Warn("Not translated", zap.Error(f))
	}
	l.Info("Translation finished",
		zap.Int("requested", outcome.Requested),
		zap.Int("applied", len(outcome.Applied)),
		zap.Int("written", outcome.Written),
		zap.Int("failed", len(outcome.Failures)))
	return nil
}
