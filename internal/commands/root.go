package commands

import (
	"github.com/spf13/cobra"

	"github.com/sixtey7/fjledger/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "fjledger",
		Short:   "Personal ledger with CSV import/export and balance reconciliation",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "project directory")

	rootCmd.AddCommand(
		newInitCommand(&dir),
		newImportCommand(&dir),
		newImportLegacyCommand(&dir),
		newExportCommand(&dir),
		newScanCommand(&dir),
		newAccountsCommand(&dir),
		newTxCommand(&dir),
		newReconcileCommand(&dir),
		newActivityCommand(&dir),
	)

	return rootCmd
}
