package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var deployDir string

// deployCmd writes the stored translations back into a project.
var deployCmd = &cobra.Command{
	Use:   "deploy [app]",
	Short: "Write stored records as Localizable.strings files",
	Long: `Writes one <locale>.lproj/Localizable.strings per stored locale of the
application under --out. Records awaiting translation keep their source text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}

		paths, err := e.service.Deploy(cmd.Context(), args[0], deployDir)
		if err != nil {
			return err
		}
		e.logger.Info("Deployed strings files", zap.String("app", args[0]), zap.Strings("files", paths))
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVarP(&deployDir, "out", "o", ".", "Directory to write the .lproj folders into")
	RootCmd.AddCommand(deployCmd)
}
