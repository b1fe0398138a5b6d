package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/accounts"
	"github.com/sixtey7/fjledger/internal/ledgercsv"
	"github.com/sixtey7/fjledger/internal/model"
	"github.com/sixtey7/fjledger/internal/store"
)

// ImportLedger decodes a current-format ledger and stores its accounts and
// transactions in one database transaction. With replace set, existing data
// is deleted first. Decode errors leave the store untouched.
func (s *Service) ImportLedger(text string, replace bool) (model.Update, error) {
	accts, txns, err := s.codec.DecodeLedger(text)
	if err != nil {
		return model.Update{}, err
	}

	s.bulk.Lock()
	defer s.bulk.Unlock()

	u := model.NewUpdate()
	err = s.repo.ExecTx(func(repo store.Repository) error {
		if replace {
			if _, err := repo.DeleteAllTransactions(); err != nil {
				return err
			}
			if _, err := repo.DeleteAllAccounts(); err != nil {
				return err
			}
		}
		if err := checkUniqueNames(repo, accts...); err != nil {
			return err
		}
		for _, a := range accts {
			if err := repo.CreateAccount(a); err != nil {
				return err
			}
		}
		for _, tx := range txns {
			if err := repo.CreateTransaction(tx); err != nil {
				return err
			}
			u.AddTransaction(tx)
		}
		for _, a := range accts {
			if err := s.reconcileInto(repo, u, a.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("importing ledger: %w", err)
	}

	s.logger.Info("imported ledger", "accounts", len(accts), "transactions", len(txns), "replace", replace)
	s.record("import_ledger", "ledger", uuid.Nil, fmt.Sprintf("%d accounts, %d transactions, replace=%t", len(accts), len(txns), replace))

	u.Success = true
	return *u, nil
}

// ImportLegacy decodes legacy rows into transactions for an existing account.
func (s *Service) ImportLegacy(text string, accountID uuid.UUID) (model.Update, error) {
	if accountID == uuid.Nil {
		return model.Update{}, ledgercsv.ErrNoAccount
	}

	s.bulk.Lock()
	defer s.bulk.Unlock()

	if _, ok, err := s.repo.GetAccount(accountID); err != nil {
		return model.Update{}, err
	} else if !ok {
		return model.Update{}, fmt.Errorf("account %s: %w", accountID, store.ErrNotFound)
	}

	txns, err := s.codec.DecodeLegacy(text, accountID)
	if err != nil {
		return model.Update{}, err
	}

	u := model.NewUpdate()
	err = s.repo.ExecTx(func(repo store.Repository) error {
		return s.storeLegacy(repo, u, accountID, txns)
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("importing legacy transactions: %w", err)
	}

	s.logger.Info("imported legacy transactions", "account", accountID, "transactions", len(txns))
	s.record("import_legacy", "account", accountID, fmt.Sprintf("%d transactions", len(txns)))

	u.Success = true
	return *u, nil
}

// ImportLegacyNewAccount creates a calculated account for the legacy rows
// and imports them into it. If the configured name is taken, the account
// gets the first free numbered variant, e.g. "Imported (2)".
func (s *Service) ImportLegacyNewAccount(text string) (model.Update, error) {
	acct := model.Account{
		ID:    s.newID(),
		Name:  s.legacyName,
		Notes: s.legacyNotes,
	}

	txns, err := s.codec.DecodeLegacy(text, acct.ID)
	if err != nil {
		return model.Update{}, err
	}

	s.bulk.Lock()
	defer s.bulk.Unlock()

	u := model.NewUpdate()
	err = s.repo.ExecTx(func(repo store.Repository) error {
		name, err := availableName(repo, acct.Name)
		if err != nil {
			return err
		}
		acct.Name = name
		if err := repo.CreateAccount(accounts.Reconcile(acct, nil)); err != nil {
			return err
		}
		return s.storeLegacy(repo, u, acct.ID, txns)
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("importing legacy transactions: %w", err)
	}

	s.logger.Info("imported legacy transactions into new account", "account", acct.ID, "name", acct.Name, "transactions", len(txns))
	s.record("import_legacy", "account", acct.ID, fmt.Sprintf("new account %q, %d transactions", acct.Name, len(txns)))

	u.Success = true
	return *u, nil
}

func (s *Service) storeLegacy(repo store.Repository, u *model.Update, accountID uuid.UUID, txns []model.Transaction) error {
	for _, tx := range txns {
		if err := repo.CreateTransaction(tx); err != nil {
			return err
		}
		u.AddTransaction(tx)
	}
	return s.reconcileInto(repo, u, accountID)
}

// Export encodes every account and transaction in the current ledger format.
func (s *Service) Export() (string, error) {
	accts, txns, err := s.snapshot()
	if err != nil {
		return "", err
	}
	return ledgercsv.EncodeLedger(accts, txns), nil
}

// ExportAccounts encodes the account lines without section markers.
func (s *Service) ExportAccounts() (string, error) {
	accts, err := s.repo.ListAccounts()
	if err != nil {
		return "", err
	}
	return ledgercsv.EncodeAccounts(accts), nil
}

// ExportTransactions encodes the transaction lines without section markers.
func (s *Service) ExportTransactions() (string, error) {
	accts, txns, err := s.snapshot()
	if err != nil {
		return "", err
	}
	return ledgercsv.EncodeTransactions(txns, accounts.IDToName(accts)), nil
}

func (s *Service) snapshot() ([]model.Account, []model.Transaction, error) {
	s.bulk.RLock()
	defer s.bulk.RUnlock()

	accts, err := s.repo.ListAccounts()
	if err != nil {
		return nil, nil, err
	}
	txns, err := s.repo.ListTransactions()
	if err != nil {
		return nil, nil, err
	}
	return accts, txns, nil
}
