package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a named balance. Dynamic accounts carry a user-entered balance;
// calculated accounts derive theirs from confirmed transactions.
type Account struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Notes   string          `json:"notes"`
	Dynamic bool            `json:"dynamic"`
}
