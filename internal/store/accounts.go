package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/model"
)

const accountColumns = "id, name, amount, notes, dynamic"

func (s *Store) CreateAccount(a model.Account) error {
	_, err := s.db.Exec(
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?)`,
		a.ID.String(), a.Name, a.Amount.String(), a.Notes, a.Dynamic,
	)
	if err != nil {
		return fmt.Errorf("inserting account %s: %w", a.ID, err)
	}
	return nil
}

func (s *Store) UpdateAccount(a model.Account) error {
	res, err := s.db.Exec(
		`UPDATE accounts SET name = ?, amount = ?, notes = ?, dynamic = ? WHERE id = ?`,
		a.Name, a.Amount.String(), a.Notes, a.Dynamic, a.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("updating account %s: %w", a.ID, err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", a.ID, ErrNotFound)
	}
	return nil
}

// GetAccount returns the account, or false if it does not exist.
func (s *Store) GetAccount(id uuid.UUID) (model.Account, bool, error) {
	row := s.db.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id.String())
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, false, nil
	}
	if err != nil {
		return model.Account{}, false, fmt.Errorf("querying account %s: %w", id, err)
	}
	return a, true, nil
}

// ListAccounts returns all accounts in insertion order.
func (s *Store) ListAccounts() ([]model.Account, error) {
	rows, err := s.db.Query(`SELECT ` + accountColumns + ` FROM accounts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *Store) DeleteAccount(id uuid.UUID) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM accounts WHERE id = ?`, id.String())
	if err != nil {
		return 0, fmt.Errorf("deleting account %s: %w", id, err)
	}
	return rowsAffected(res)
}

func (s *Store) DeleteAllAccounts() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM accounts`)
	if err != nil {
		return 0, fmt.Errorf("deleting accounts: %w", err)
	}
	return rowsAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (model.Account, error) {
	var a model.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Amount, &a.Notes, &a.Dynamic); err != nil {
		return model.Account{}, err
	}
	return a, nil
}
