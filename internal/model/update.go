package model

// Update is the result of one mutation: the transactions and accounts it
// changed, for incremental refresh on the client side.
type Update struct {
	Transactions []Transaction `json:"transactions"`
	Accounts     []Account     `json:"accounts"`
	Success      bool          `json:"success"`
}

// NewUpdate returns an empty, unsuccessful Update.
func NewUpdate() *Update {
	return &Update{
		Transactions: []Transaction{},
		Accounts:     []Account{},
	}
}

// AddTransaction records a changed transaction. A transaction already present
// is replaced in place.
func (u *Update) AddTransaction(tx Transaction) {
	for i := range u.Transactions {
		if u.Transactions[i].ID == tx.ID {
			u.Transactions[i] = tx
			return
		}
	}
	u.Transactions = append(u.Transactions, tx)
}

// AddAccount records a changed account. An account already present is
// replaced in place.
func (u *Update) AddAccount(acct Account) {
	for i := range u.Accounts {
		if u.Accounts[i].ID == acct.ID {
			u.Accounts[i] = acct
			return
		}
	}
	u.Accounts = append(u.Accounts, acct)
}
