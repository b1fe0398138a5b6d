// Package ledgercsv converts accounts and transactions to and from the flat
// CSV text used for ledger export and import.
//
// Fields are separated by bare commas with no quoting, so names and notes
// must not contain commas or newlines.
package ledgercsv

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sixtey7/fjledger/internal/id"
	"github.com/sixtey7/fjledger/internal/model"
)

// Codec decodes ledger text. It holds no state between calls.
type Codec struct {
	logger *slog.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the clock used for default dates and type inference.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// WithIDs overrides identifier generation for decoded entities.
func WithIDs(newID func() uuid.UUID) Option {
	return func(c *Codec) { c.newID = newID }
}

// New creates a Codec. A nil logger uses slog.Default().
func New(logger *slog.Logger, opts ...Option) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Codec{
		logger: logger,
		now:    time.Now,
		newID:  id.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DecodeLedger decodes a two-section ledger document with a default Codec.
func DecodeLedger(text string) ([]model.Account, []model.Transaction, error) {
	return New(nil).DecodeLedger(text)
}

// DecodeLegacy decodes a single-account legacy document with a default Codec.
func DecodeLegacy(text string, accountID uuid.UUID) ([]model.Transaction, error) {
	return New(nil).DecodeLegacy(text, accountID)
}

// DetermineAmount combines debit and credit columns with a default Codec.
func DetermineAmount(debit, credit string) (decimal.Decimal, error) {
	return New(nil).DetermineAmount(debit, credit)
}
