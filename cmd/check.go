package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"locale-manager/core/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkJSON bool

// checkCmd verifies the schema and prints per-locale counts.
var checkCmd = &cobra.Command{
	Use:   "check [app]",
	Short: "Verify the schema and show translation progress",
	Long: `Checks that the records table matches the expected schema and prints the
number of records and pending translations per locale. Without an app every
stored application is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// migrateCmd creates or updates the records table.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the records table",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		if err := e.store.Migrate(cmd.Context()); err != nil {
			return err
		}
		e.logger.Info("Schema migrated", zap.String("table", store.TableName))
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the statistics as JSON")
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(migrateCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := setup()
	if err != nil {
		return err
	}

	if err := e.store.VerifySchema(ctx); err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}
	e.logger.Info("Schema OK", zap.String("table", store.TableName))

	apps := args
	if len(apps) == 0 {
		if apps, err = e.store.Apps(ctx); err != nil {
			return err
		}
	}

	all := make(map[string][]store.PartitionStats, len(apps))
	for _, app := range apps {
		stats, err := e.service.Stats(ctx, app)
		if err != nil {
			return err
		}
		all[app] = stats
	}

	if checkJSON {
		data, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	fmt.Println("\n=== Translation Progress ===")
	for _, app := range apps {
		for _, s := range all[app] {
			locale := s.Lang
			if s.Territory != "" {
				locale += "-" + s.Territory
			}
			fmt.Printf("%-16s %-10s total: %6d  pending: %6d\n", app, locale, s.Total, s.Pending)
		}
	}
	return nil
}
