package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sixtey7/fjledger/internal/id"
	"github.com/sixtey7/fjledger/internal/model"
)

func newAccountsCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acct"},
		Short:   "Manage accounts",
	}
	cmd.AddCommand(newAccountsListCommand(dir), newAccountsAddCommand(dir), newAccountsDeleteCommand(dir))
	return cmd
}

func newAccountsListCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dir, func(a *app) error {
				accts, err := a.ledger.Accounts()
				if err != nil {
					return err
				}
				return renderAccounts(cmd.OutOrStdout(), accts)
			})
		},
	}
}

func newAccountsAddCommand(dir *string) *cobra.Command {
	var amount string
	var notes string
	var dynamic bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Long: `Add an account.

Calculated accounts (the default) derive their balance from confirmed
transactions. Dynamic accounts keep the balance given with --amount.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acct := model.Account{Name: args[0], Notes: notes, Dynamic: dynamic}
			if amount != "" {
				d, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("parsing --amount %q: %w", amount, err)
				}
				acct.Amount = d
			}
			return withApp(*dir, func(a *app) error {
				u, err := a.ledger.AddAccount(acct)
				if err != nil {
					return err
				}
				pterm.Success.Printf("Added account %s (%s)\n", u.Accounts[0].Name, id.Format(u.Accounts[0].ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "balance for a dynamic account")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&dynamic, "dynamic", false, "keep a user-entered balance instead of calculating it")

	return cmd
}

func newAccountsDeleteCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an account (its transactions are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			return withApp(*dir, func(a *app) error {
				u, err := a.ledger.DeleteAccount(accountID)
				if err != nil {
					return err
				}
				pterm.Success.Printf("Deleted account %s\n", u.Accounts[0].Name)
				return nil
			})
		},
	}
}
