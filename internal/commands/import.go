package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sixtey7/fjledger/internal/id"
	"github.com/sixtey7/fjledger/internal/importer"
)

func newImportCommand(dir *string) *cobra.Command {
	var format string
	var replace bool
	var account string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a ledger or legacy CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := id.ParseOptional(account)
			if err != nil {
				return fmt.Errorf("parsing --account: %w", err)
			}
			opts := importer.Options{Replace: replace, AccountID: accountID}
			return runImport(*dir, args[0], format, opts)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "file format: ledger or legacy (detected when empty)")
	cmd.Flags().BoolVar(&replace, "replace", false, "clear existing data before a ledger import")
	cmd.Flags().StringVar(&account, "account", "", "target account ID for legacy imports")

	return cmd
}

func newImportLegacyCommand(dir *string) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "import-legacy <file>",
		Short: "Import a legacy single-account CSV file",
		Long: `Import rows of name,debit,credit,MM/DD/YY,notes.

Without --account a new calculated account is created for the rows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := id.ParseOptional(account)
			if err != nil {
				return fmt.Errorf("parsing --account: %w", err)
			}
			return runImport(*dir, args[0], "legacy", importer.Options{AccountID: accountID})
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "target account ID (creates a new account when empty)")

	return cmd
}

func runImport(dir, path, format string, opts importer.Options) error {
	return withApp(dir, func(a *app) error {
		u, err := importer.DefaultRegistry().ImportFile(a.ledger, path, format, opts)
		if err != nil {
			return err
		}
		pterm.Info.Printf("Imported %s\n", filepath.Base(path))
		printUpdate(u)
		return nil
	})
}

func newScanCommand(dir *string) *cobra.Command {
	var dryRun bool
	var replace bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Import every CSV file in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(*dir, dryRun, replace)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list files and detected formats without importing")
	cmd.Flags().BoolVar(&replace, "replace", false, "clear existing data before each ledger import")

	return cmd
}

func runScan(dir string, dryRun, replace bool) error {
	return withApp(dir, func(a *app) error {
		files, err := importer.Scan(a.cfg.Import.Dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			pterm.Info.Printf("No CSV files in %s\n", a.cfg.Import.Dir)
			return nil
		}

		reg := importer.DefaultRegistry()
		data := [][]string{{"File", "Size", "Status"}}
		failed := 0
		for _, f := range files {
			status := ""
			switch {
			case dryRun:
				status = "would import"
			default:
				u, err := reg.ImportFile(a.ledger, f.Path, "", importer.Options{Replace: replace})
				if err != nil {
					failed++
					status = "failed: " + err.Error()
					break
				}
				if err := importer.MarkProcessed(a.cfg.Import.Dir, f.Name); err != nil {
					return err
				}
				status = fmt.Sprintf("imported %d transactions", len(u.Transactions))
			}
			data = append(data, []string{f.Name, fmt.Sprintf("%d", f.Size), status})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed to import", failed, len(files))
		}
		return nil
	})
}
