// Package ledger applies mutations to the stored ledger, keeps calculated
// account balances reconciled, and reports each change as a model.Update.
package ledger

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/accounts"
	"github.com/sixtey7/fjledger/internal/activity"
	"github.com/sixtey7/fjledger/internal/id"
	"github.com/sixtey7/fjledger/internal/ledgercsv"
	"github.com/sixtey7/fjledger/internal/model"
	"github.com/sixtey7/fjledger/internal/store"
)

const (
	DefaultLegacyAccountName  = "Imported"
	DefaultLegacyAccountNotes = "Imported from a CSV file"
)

// Recorder receives an audit entry for every successful mutation.
type Recorder interface {
	Record(e activity.Entry) error
}

// Service provides the ledger operations on top of a store.Repository.
type Service struct {
	repo     store.Repository
	codec    *ledgercsv.Codec
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
	newID    func() uuid.UUID

	legacyName  string
	legacyNotes string

	// bulk is held exclusively by imports and ClearAll, shared by everything
	// else; locks serializes read-compute-write per account.
	bulk  sync.RWMutex
	locks *accountLocks
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDs(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLegacyAccount sets the name and notes of the account created by
// ImportLegacyNewAccount. Empty values keep the defaults.
func WithLegacyAccount(name, notes string) Option {
	return func(s *Service) {
		if name != "" {
			s.legacyName = name
		}
		if notes != "" {
			s.legacyNotes = notes
		}
	}
}

// NewService creates a ledger Service.
func NewService(repo store.Repository, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		logger:      slog.Default(),
		now:         time.Now,
		newID:       id.New,
		legacyName:  DefaultLegacyAccountName,
		legacyNotes: DefaultLegacyAccountNotes,
		locks:       newAccountLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.codec = ledgercsv.New(s.logger, ledgercsv.WithClock(s.now), ledgercsv.WithIDs(s.newID))
	return s
}

// Accounts returns every account in insertion order.
func (s *Service) Accounts() ([]model.Account, error) {
	return s.repo.ListAccounts()
}

// Account returns the account with the given ID, or false if absent.
func (s *Service) Account(accountID uuid.UUID) (model.Account, bool, error) {
	return s.repo.GetAccount(accountID)
}

// Transactions returns every transaction ordered by date.
func (s *Service) Transactions() ([]model.Transaction, error) {
	return s.repo.ListTransactions()
}

// Transaction returns the transaction with the given ID, or false if absent.
func (s *Service) Transaction(txID uuid.UUID) (model.Transaction, bool, error) {
	return s.repo.GetTransaction(txID)
}

func (s *Service) TransactionsForAccount(accountID uuid.UUID) ([]model.Transaction, error) {
	return s.repo.ListTransactionsForAccount(accountID)
}

// TransactionsBetween returns transactions dated within [start, end].
func (s *Service) TransactionsBetween(start, end time.Time) ([]model.Transaction, error) {
	if end.Before(start) {
		return nil, ValidationError{Field: "date range", Reason: fmt.Sprintf("end %s is before start %s",
			end.Format(model.DateFormat), start.Format(model.DateFormat))}
	}
	return s.repo.ListTransactionsBetween(model.DateOf(start), model.DateOf(end))
}

// TransactionsNewerThan returns transactions dated strictly after date.
func (s *Service) TransactionsNewerThan(date time.Time) ([]model.Transaction, error) {
	return s.repo.ListTransactionsNewerThan(model.DateOf(date))
}

func (s *Service) record(action, subject string, subjectID uuid.UUID, details string) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.Record(activity.Entry{
		Timestamp: s.now(),
		Action:    action,
		Subject:   subject,
		SubjectID: id.Format(subjectID),
		Details:   details,
	})
	if err != nil {
		s.logger.Warn("recording activity", "action", action, "error", err)
	}
}

// reconcile recomputes and stores the balance of accountID using repo.
// Callers hold the account's lock. A missing account reports false.
func (s *Service) reconcile(repo store.Repository, accountID uuid.UUID) (model.Account, bool, error) {
	if accountID == uuid.Nil {
		return model.Account{}, false, nil
	}

	acct, ok, err := repo.GetAccount(accountID)
	if err != nil {
		return model.Account{}, false, err
	}
	if !ok {
		s.logger.Warn("reconcile: account not found", "account", accountID)
		return model.Account{}, false, nil
	}
	if acct.Dynamic {
		return acct, true, nil
	}

	txns, err := repo.ListTransactionsForAccount(accountID)
	if err != nil {
		return model.Account{}, false, err
	}

	updated := accounts.Reconcile(acct, txns)
	if err := repo.UpdateAccount(updated); err != nil {
		return model.Account{}, false, err
	}
	s.logger.Debug("reconciled account", "account", accountID, "transactions", len(txns), "balance", updated.Amount.String())
	return updated, true, nil
}
