package accounts

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sixtey7/fjledger/internal/model"
)

// Counts reports whether a transaction contributes to its account's balance.
// Only settled transactions count; planned, estimated and future ones do not,
// whatever their date.
func Counts(tx model.Transaction) bool {
	return tx.Type == model.TransConfirmed
}

// Reconcile recomputes a calculated account's balance as the sum of its
// confirmed transactions. Transactions belonging to other accounts are
// ignored. Dynamic accounts are returned unchanged.
func Reconcile(account model.Account, txns []model.Transaction) model.Account {
	if account.Dynamic {
		return account
	}

	sorted := SortByDate(txns)
	balance := decimal.Zero
	for _, tx := range sorted {
		if tx.AccountID != account.ID || !Counts(tx) {
			continue
		}
		balance = balance.Add(tx.Amount)
	}

	account.Amount = balance
	return account
}

// ReconcileByID looks the account up by ID and reconciles it. The boolean is
// false when no such account exists.
func ReconcileByID(accountID uuid.UUID, accounts []model.Account, txns []model.Transaction) (model.Account, bool) {
	acct, ok := Find(accounts, accountID)
	if !ok {
		return model.Account{}, false
	}
	return Reconcile(acct, txns), true
}

// SortByDate returns a copy of txns ordered by ascending date. Transactions on
// the same date keep their relative order.
func SortByDate(txns []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
