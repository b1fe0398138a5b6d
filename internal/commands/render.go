package commands

import (
	"io"

	"github.com/pterm/pterm"

	"github.com/sixtey7/fjledger/internal/accounts"
	"github.com/sixtey7/fjledger/internal/activity"
	"github.com/sixtey7/fjledger/internal/id"
	"github.com/sixtey7/fjledger/internal/ledgercsv"
	"github.com/sixtey7/fjledger/internal/model"
)

func accountKind(a model.Account) string {
	if a.Dynamic {
		return ledgercsv.LabelDynamic
	}
	return ledgercsv.LabelCalculated
}

func renderAccounts(w io.Writer, accts []model.Account) error {
	data := pterm.TableData{{"ID", "Name", "Balance", "Kind", "Notes"}}
	for _, a := range accts {
		data = append(data, []string{
			id.Format(a.ID),
			a.Name,
			a.Amount.StringFixed(2),
			accountKind(a),
			a.Notes,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func renderTransactions(w io.Writer, txns []model.Transaction, accts []model.Account) error {
	names := accounts.IDToName(accts)
	data := pterm.TableData{{"ID", "Date", "Name", "Debit", "Credit", "Account", "Type", "Notes"}}
	for _, tx := range txns {
		debit, credit := ledgercsv.SplitAmount(tx.Amount)
		account := names[tx.AccountID]
		if account == "" {
			account = id.Short(tx.AccountID)
		}
		data = append(data, []string{
			id.Format(tx.ID),
			tx.Date.Format(model.DateFormat),
			tx.Name,
			debit,
			credit,
			account,
			string(tx.Type),
			tx.Notes,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func renderActivity(w io.Writer, entries []activity.Entry) error {
	data := pterm.TableData{{"Time", "Action", "Subject", "ID", "Details"}}
	for _, e := range entries {
		data = append(data, []string{
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Action,
			e.Subject,
			e.SubjectID,
			e.Details,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func printUpdate(u model.Update) {
	pterm.Success.Printf("%d transactions, %d accounts updated\n", len(u.Transactions), len(u.Accounts))
	for _, a := range u.Accounts {
		pterm.Info.Printf("%s: %s (%s)\n", a.Name, a.Amount.StringFixed(2), accountKind(a))
	}
}
