package commands

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sixtey7/fjledger/internal/id"
	"github.com/sixtey7/fjledger/internal/model"
)

func newTxCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Manage transactions",
	}
	cmd.AddCommand(newTxListCommand(dir), newTxAddCommand(dir), newTxDeleteCommand(dir))
	return cmd
}

type txListFlags struct {
	account   string
	from      string
	to        string
	newerThan string
}

func newTxListCommand(dir *string) *cobra.Command {
	flags := &txListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions ordered by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dir, func(a *app) error {
				txns, err := listTransactions(a, flags)
				if err != nil {
					return err
				}
				accts, err := a.ledger.Accounts()
				if err != nil {
					return err
				}
				return renderTransactions(cmd.OutOrStdout(), txns, accts)
			})
		},
	}

	cmd.Flags().StringVar(&flags.account, "account", "", "only transactions for this account ID")
	cmd.Flags().StringVar(&flags.from, "from", "", "start date (YYYY-MM-DD), requires --to")
	cmd.Flags().StringVar(&flags.to, "to", "", "end date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&flags.newerThan, "newer-than", "", "only transactions dated after this day")

	return cmd
}

func listTransactions(a *app, flags *txListFlags) ([]model.Transaction, error) {
	switch {
	case flags.account != "":
		accountID, err := id.Parse(flags.account)
		if err != nil {
			return nil, fmt.Errorf("parsing --account: %w", err)
		}
		return a.ledger.TransactionsForAccount(accountID)
	case flags.from != "" || flags.to != "":
		if flags.from == "" || flags.to == "" {
			return nil, errors.New("--from and --to must be used together")
		}
		start, err := model.ParseDate(flags.from)
		if err != nil {
			return nil, fmt.Errorf("parsing --from: %w", err)
		}
		end, err := model.ParseDate(flags.to)
		if err != nil {
			return nil, fmt.Errorf("parsing --to: %w", err)
		}
		return a.ledger.TransactionsBetween(start, end)
	case flags.newerThan != "":
		d, err := model.ParseDate(flags.newerThan)
		if err != nil {
			return nil, fmt.Errorf("parsing --newer-than: %w", err)
		}
		return a.ledger.TransactionsNewerThan(d)
	}
	return a.ledger.Transactions()
}

func newTxAddCommand(dir *string) *cobra.Command {
	var (
		amount  string
		account string
		date    string
		typ     string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a transaction",
		Long: `Add a transaction.

Negative amounts are debits, positive amounts credits; pass negative values
as --amount=-12.50. Only CONFIRMED transactions count toward a balance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx := model.Transaction{Name: args[0], Notes: notes, Type: model.TransType(typ)}

			d, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing --amount %q: %w", amount, err)
			}
			tx.Amount = d

			if tx.AccountID, err = id.ParseOptional(account); err != nil {
				return fmt.Errorf("parsing --account: %w", err)
			}

			if date != "" {
				if tx.Date, err = model.ParseDate(date); err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
			}

			return withApp(*dir, func(a *app) error {
				u, err := a.ledger.AddTransaction(tx)
				if err != nil {
					return err
				}
				added := u.Transactions[0]
				pterm.Success.Printf("Added transaction %s on %s\n", id.Format(added.ID), added.Date.Format(model.DateFormat))
				printUpdate(u)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "signed amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&account, "account", "", "account ID")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&typ, "type", string(model.TransFuture), "PLANNED, ESTIMATE, CONFIRMED or FUTURE")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func newTxDeleteCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction and reconcile its account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txID, err := id.Parse(args[0])
			if err != nil {
				return err
			}
			return withApp(*dir, func(a *app) error {
				u, err := a.ledger.DeleteTransaction(txID)
				if err != nil {
					return err
				}
				pterm.Success.Printf("Deleted transaction %s\n", u.Transactions[0].Name)
				printUpdate(u)
				return nil
			})
		},
	}
}
