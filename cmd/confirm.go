package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"locale-manager/core/reconcile"
	"locale-manager/core/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Shared flags of the commands that write
	dryRun     bool
	yesConfirm bool
)

func addWriteFlags(c *cobra.Command) {
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Force dry-run (no writes even with --yes)")
	c.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm writes (non-interactive)")
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}

// printReport logs the category counts and a sample of keys per category.
func printReport(l *zap.Logger, rep *report.Report) {
	l.Info("Reconciliation report",
		zap.Int("new", rep.Count(report.CategoryNew)),
		zap.Int("unchanged", rep.Count(report.CategoryUnchanged)),
		zap.Int("updated", rep.Count(report.CategoryUpdated)),
		zap.Int("orphaned", rep.Count(report.CategoryOrphaned)),
		zap.Int("errors", len(rep.Errors())),
	)

	const maxShow = 5
	for _, c := range []report.Category{report.CategoryNew, report.CategoryUpdated, report.CategoryOrphaned} {
		keys := rep.Keys(c)
		for i := 0; i < len(keys) && i < maxShow; i++ {
			l.Info("Sample key", zap.String("category", c.String()), zap.Stringer("key", keys[i]))
		}
		if len(keys) > maxShow {
			l.Info("Additional keys not shown", zap.String("category", c.String()), zap.Int("count", len(keys)-maxShow))
		}
	}

	for _, err := range rep.Errors() {
		l.Warn("Rejected record", zap.Error(err))
	}
}

// confirmedOptions asks for confirmation unless --dry-run is set.
// The returned options write only when the user agreed.
func confirmedOptions(l *zap.Logger) reconcile.Options {
	if dryRun {
		l.Info("Dry-run mode: No changes were made.")
		return reconcile.Options{DryRun: true}
	}
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return reconcile.Options{}
	}
	return reconcile.Options{Confirmed: true}
}
