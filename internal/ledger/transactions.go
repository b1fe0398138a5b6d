package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/model"
	"github.com/sixtey7/fjledger/internal/store"
)

// AddTransaction stores a new transaction and reconciles its account.
func (s *Service) AddTransaction(tx model.Transaction) (model.Update, error) {
	if tx.ID != uuid.Nil {
		return model.Update{}, ErrIDAssigned
	}
	tx, err := normalizeTransaction(tx, s.now())
	if err != nil {
		return model.Update{}, err
	}

	s.bulk.RLock()
	defer s.bulk.RUnlock()
	unlock := s.locks.lock(tx.AccountID)
	defer unlock()

	tx.ID = s.newID()
	u := model.NewUpdate()
	err = s.repo.ExecTx(func(repo store.Repository) error {
		if err := repo.CreateTransaction(tx); err != nil {
			return err
		}
		return s.reconcileInto(repo, u, tx.AccountID)
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("adding transaction: %w", err)
	}

	s.logger.Info("added transaction", "transaction", tx.ID, "account", tx.AccountID, "amount", tx.Amount.String(), "type", tx.Type)
	s.record("add_transaction", "transaction", tx.ID, txDetails(tx))

	u.AddTransaction(tx)
	u.Success = true
	return *u, nil
}

// UpdateTransaction replaces a stored transaction. When the transaction moves
// between accounts both the old and the new account are reconciled.
func (s *Service) UpdateTransaction(tx model.Transaction) (model.Update, error) {
	if tx.ID == uuid.Nil {
		return model.Update{}, ValidationError{Field: "id", Reason: "transaction id is required"}
	}
	tx, err := normalizeTransaction(tx, s.now())
	if err != nil {
		return model.Update{}, err
	}

	s.bulk.RLock()
	defer s.bulk.RUnlock()

	old, unlock, err := s.lockTransaction(tx.ID, tx.AccountID)
	if err != nil {
		return model.Update{}, err
	}
	defer unlock()

	u := model.NewUpdate()
	err = s.repo.ExecTx(func(repo store.Repository) error {
		if err := repo.UpdateTransaction(tx); err != nil {
			return err
		}
		if err := s.reconcileInto(repo, u, old.AccountID); err != nil {
			return err
		}
		if tx.AccountID != old.AccountID {
			return s.reconcileInto(repo, u, tx.AccountID)
		}
		return nil
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("updating transaction %s: %w", tx.ID, err)
	}

	s.logger.Info("updated transaction", "transaction", tx.ID, "from_account", old.AccountID, "to_account", tx.AccountID)
	s.record("update_transaction", "transaction", tx.ID, txDetails(tx))

	u.AddTransaction(tx)
	u.Success = true
	return *u, nil
}

// DeleteTransaction removes a transaction and reconciles the account it
// belonged to. The envelope carries the deleted transaction.
func (s *Service) DeleteTransaction(txID uuid.UUID) (model.Update, error) {
	s.bulk.RLock()
	defer s.bulk.RUnlock()

	old, unlock, err := s.lockTransaction(txID)
	if err != nil {
		return model.Update{}, err
	}
	defer unlock()

	u := model.NewUpdate()
	err = s.repo.ExecTx(func(repo store.Repository) error {
		if _, err := repo.DeleteTransaction(txID); err != nil {
			return err
		}
		return s.reconcileInto(repo, u, old.AccountID)
	})
	if err != nil {
		return model.Update{}, fmt.Errorf("deleting transaction %s: %w", txID, err)
	}

	s.logger.Info("deleted transaction", "transaction", txID, "account", old.AccountID)
	s.record("delete_transaction", "transaction", txID, txDetails(old))

	u.AddTransaction(old)
	u.Success = true
	return *u, nil
}

// lockTransaction loads the stored transaction and locks its account plus
// extra. If the transaction moved while waiting, the locks are retaken.
func (s *Service) lockTransaction(txID uuid.UUID, extra ...uuid.UUID) (model.Transaction, func(), error) {
	for {
		old, ok, err := s.repo.GetTransaction(txID)
		if err != nil {
			return model.Transaction{}, nil, err
		}
		if !ok {
			return model.Transaction{}, nil, fmt.Errorf("transaction %s: %w", txID, store.ErrNotFound)
		}

		unlock := s.locks.lock(append([]uuid.UUID{old.AccountID}, extra...)...)
		current, ok, err := s.repo.GetTransaction(txID)
		switch {
		case err != nil:
			unlock()
			return model.Transaction{}, nil, err
		case !ok:
			unlock()
			return model.Transaction{}, nil, fmt.Errorf("transaction %s: %w", txID, store.ErrNotFound)
		case current.AccountID != old.AccountID:
			unlock()
			continue
		}
		return current, unlock, nil
	}
}

func (s *Service) reconcileInto(repo store.Repository, u *model.Update, accountID uuid.UUID) error {
	acct, ok, err := s.reconcile(repo, accountID)
	if err != nil {
		return err
	}
	if ok {
		u.AddAccount(acct)
	}
	return nil
}

func txDetails(tx model.Transaction) string {
	return fmt.Sprintf("%s %s %s %s", tx.Date.Format(model.DateFormat), tx.Name, tx.Amount.String(), tx.Type)
}
