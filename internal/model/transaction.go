package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransType is the settlement state of a transaction.
type TransType string

const (
	TransPlanned   TransType = "PLANNED"
	TransEstimate  TransType = "ESTIMATE"
	TransPending   TransType = "PENDING" // reserved, nothing produces it yet
	TransConfirmed TransType = "CONFIRMED"
	TransFuture    TransType = "FUTURE"
)

// TransTypes lists every TransType in declaration order.
var TransTypes = []TransType{TransPlanned, TransEstimate, TransPending, TransConfirmed, TransFuture}

// ParseTransType matches name exactly against the enumeration.
func ParseTransType(name string) (TransType, error) {
	for _, t := range TransTypes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", name)
}

// Transaction is a single dated movement of money against an account.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"accountId"` // uuid.Nil = no account
	Name      string          `json:"name"`
	Date      time.Time       `json:"date"`   // midnight UTC
	Amount    decimal.Decimal `json:"amount"` // negative = debit, positive = credit
	Type      TransType       `json:"type"`
	Notes     string          `json:"notes"`
}

// HasAccount reports whether the transaction references an account.
func (t Transaction) HasAccount() bool {
	return t.AccountID != uuid.Nil
}
