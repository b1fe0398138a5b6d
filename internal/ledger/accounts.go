package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/accounts"
	"github.com/sixtey7/fjledger/internal/model"
	"github.com/sixtey7/fjledger/internal/store"
)

// AddAccount stores a new account under a fresh ID. A calculated account
// starts at the balance of whatever confirmed transactions already carry
// its ID, which for a new ID is zero.
func (s *Service) AddAccount(a model.Account) (model.Update, error) {
	if a.ID != uuid.Nil {
		return model.Update{}, ErrIDAssigned
	}
	if err := validateAccount(a); err != nil {
		return model.Update{}, err
	}

	s.bulk.RLock()
	defer s.bulk.RUnlock()

	a.ID = s.newID()
	if !a.Dynamic {
		a = accounts.Reconcile(a, nil)
	}
	err := s.repo.ExecTx(func(repo store.Repository) error {
		if err := checkUniqueNames(repo, a); err != nil {
			return err
		}
		return repo.CreateAccount(a)
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("adding account %q: %w", a.Name, err)
	}

	s.logger.Info("added account", "account", a.ID, "name", a.Name, "dynamic", a.Dynamic)
	s.record("add_account", "account", a.ID, a.Name)

	u := model.NewUpdate()
	u.AddAccount(a)
	u.Success = true
	return *u, nil
}

// UpdateAccount replaces the stored account with the same ID. Calculated
// accounts have their balance recomputed, ignoring the supplied amount.
func (s *Service) UpdateAccount(a model.Account) (model.Update, error) {
	if a.ID == uuid.Nil {
		return model.Update{}, ValidationError{Field: "id", Reason: "account id is required"}
	}
	if err := validateAccount(a); err != nil {
		return model.Update{}, err
	}

	s.bulk.RLock()
	defer s.bulk.RUnlock()
	unlock := s.locks.lock(a.ID)
	defer unlock()

	var saved model.Account
	err := s.repo.ExecTx(func(repo store.Repository) error {
		if err := checkUniqueNames(repo, a); err != nil {
			return err
		}
		if err := repo.UpdateAccount(a); err != nil {
			return err
		}
		acct, _, err := s.reconcile(repo, a.ID)
		saved = acct
		return err
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("updating account %s: %w", a.ID, err)
	}

	s.logger.Info("updated account", "account", a.ID, "name", a.Name)
	s.record("update_account", "account", a.ID, a.Name)

	u := model.NewUpdate()
	u.AddAccount(saved)
	u.Success = true
	return *u, nil
}

// DeleteAccount removes an account. Its transactions are kept and continue
// to reference the deleted ID.
func (s *Service) DeleteAccount(accountID uuid.UUID) (model.Update, error) {
	s.bulk.RLock()
	defer s.bulk.RUnlock()
	unlock := s.locks.lock(accountID)
	defer unlock()

	acct, ok, err := s.repo.GetAccount(accountID)
	if err != nil {
		return model.Update{}, err
	}
	if !ok {
		return model.Update{}, fmt.Errorf("account %s: %w", accountID, store.ErrNotFound)
	}
	if _, err := s.repo.DeleteAccount(accountID); err != nil {
		return model.Update{}, err
	}

	s.logger.Info("deleted account", "account", accountID, "name", acct.Name)
	s.record("delete_account", "account", accountID, acct.Name)

	u := model.NewUpdate()
	u.AddAccount(acct)
	u.Success = true
	return *u, nil
}

// ClearAll deletes every transaction and account.
func (s *Service) ClearAll() (model.Update, error) {
	s.bulk.Lock()
	defer s.bulk.Unlock()

	var nTx, nAcct int64
	err := s.repo.ExecTx(func(repo store.Repository) error {
		var err error
		if nTx, err = repo.DeleteAllTransactions(); err != nil {
			return err
		}
		nAcct, err = repo.DeleteAllAccounts()
		return err
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("clearing ledger: %w", err)
	}

	s.logger.Info("cleared ledger", "transactions", nTx, "accounts", nAcct)
	s.record("clear", "ledger", uuid.Nil, fmt.Sprintf("%d transactions, %d accounts", nTx, nAcct))

	u := model.NewUpdate()
	u.Success = true
	return *u, nil
}

// Recalculate recomputes the balance of one account. It reports false when
// the account does not exist. Dynamic accounts are returned unchanged.
func (s *Service) Recalculate(accountID uuid.UUID) (model.Account, bool, error) {
	s.bulk.RLock()
	defer s.bulk.RUnlock()
	unlock := s.locks.lock(accountID)
	defer unlock()

	return s.reconcile(s.repo, accountID)
}

// RecalculateAll recomputes every calculated account.
func (s *Service) RecalculateAll() (model.Update, error) {
	accts, err := s.repo.ListAccounts()
	if err != nil {
		return model.Update{}, err
	}

	u := model.NewUpdate()
	for _, a := range accts {
		if a.Dynamic {
			continue
		}
		updated, ok, err := s.Recalculate(a.ID)
		if err != nil {
			return model.Update{}, fmt.Errorf("recalculating %s: %w", a.Name, err)
		}
		if ok {
			u.AddAccount(updated)
		}
	}
	u.Success = true
	return *u, nil
}
