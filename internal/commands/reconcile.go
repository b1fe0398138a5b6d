package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sixtey7/fjledger/internal/id"
	"github.com/sixtey7/fjledger/internal/model"
)

func newReconcileCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Recompute calculated account balances from confirmed transactions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dir, func(a *app) error {
				if len(args) == 0 {
					u, err := a.ledger.RecalculateAll()
					if err != nil {
						return err
					}
					return renderAccounts(cmd.OutOrStdout(), u.Accounts)
				}

				accountID, err := id.Parse(args[0])
				if err != nil {
					return err
				}
				acct, ok, err := a.ledger.Recalculate(accountID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("account %s not found", args[0])
				}
				if acct.Dynamic {
					pterm.Warning.Printf("%s is dynamic; balance left as entered\n", acct.Name)
				}
				return renderAccounts(cmd.OutOrStdout(), []model.Account{acct})
			})
		},
	}
}
