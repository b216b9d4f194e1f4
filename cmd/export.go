package cmd

import (
	"fmt"
	"os"

	"locale-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportAll     bool
	exportLang    string
	exportOut     string
	exportPublish bool
)

// exportCmd writes an exchange file.
var exportCmd = &cobra.Command{
	Use:   "export [app]",
	Short: "Export records awaiting translation as CSV",
	Long: `Writes the records awaiting translation as a CSV exchange file for translators.
With --publish one file per locale is uploaded to the hand-off bucket instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every record, not only pending ones")
	exportCmd.Flags().StringVar(&exportLang, "lang", "", "Restrict to one language")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to stdout)")
	exportCmd.Flags().BoolVar(&exportPublish, "publish", false, "Upload per-locale files to the hand-off bucket")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	appID := args[0]

	e, err := setup()
	if err != nil {
		return err
	}
	l := e.logger.With(zap.String("app", appID))

	if exportPublish {
		keys, err := e.service.Publish(ctx, appID, !exportAll)
		if err != nil {
			return err
		}
		l.Info("Published hand-off files", zap.Strings("objects", keys))
		return nil
	}

	data, count, err := e.service.Export(ctx, reconcile.Filter{AppID: appID, Lang: exportLang}, !exportAll)
	if err != nil {
		return err
	}

	if exportOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	l.Info("Exported records", zap.String("file", exportOut), zap.Int("rows", count))
	return nil
}
