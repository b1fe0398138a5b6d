package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newExportCommand(dir *string) *cobra.Command {
	var output string
	var onlyAccounts bool
	var onlyTransactions bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger in CSV form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if onlyAccounts && onlyTransactions {
				return errors.New("--accounts and --transactions are mutually exclusive")
			}
			return withApp(*dir, func(a *app) error {
				var text string
				var err error
				switch {
				case onlyAccounts:
					text, err = a.ledger.ExportAccounts()
				case onlyTransactions:
					text, err = a.ledger.ExportTransactions()
				default:
					text, err = a.ledger.Export()
				}
				if err != nil {
					return err
				}
				return writeExport(cmd.OutOrStdout(), output, text)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&onlyAccounts, "accounts", false, "export account lines only")
	cmd.Flags().BoolVar(&onlyTransactions, "transactions", false, "export transaction lines only")

	return cmd
}

func writeExport(stdout io.Writer, output, text string) error {
	if output == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	pterm.Success.Printf("Exported to %s\n", output)
	return nil
}
