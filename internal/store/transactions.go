package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/model"
)

// Rows come back by date, then insertion order, so equal dates stay stable.
const (
	txColumns = "id, account_id, name, date, amount, type, notes"
	txOrder   = " ORDER BY date, rowid"
)

func (s *Store) CreateTransaction(tx model.Transaction) error {
	_, err := s.db.Exec(
		`INSERT INTO transactions (`+txColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID.String(), accountRef(tx.AccountID), tx.Name, tx.Date.Format(model.DateFormat),
		tx.Amount.String(), string(tx.Type), tx.Notes,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (s *Store) UpdateTransaction(tx model.Transaction) error {
	res, err := s.db.Exec(
		`UPDATE transactions SET account_id = ?, name = ?, date = ?, amount = ?, type = ?, notes = ? WHERE id = ?`,
		accountRef(tx.AccountID), tx.Name, tx.Date.Format(model.DateFormat),
		tx.Amount.String(), string(tx.Type), tx.Notes, tx.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("updating transaction %s: %w", tx.ID, err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", tx.ID, ErrNotFound)
	}
	return nil
}

// GetTransaction returns the transaction, or false if it does not exist.
func (s *Store) GetTransaction(id uuid.UUID) (model.Transaction, bool, error) {
	row := s.db.QueryRow(`SELECT `+txColumns+` FROM transactions WHERE id = ?`, id.String())
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, false, nil
	}
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("querying transaction %s: %w", id, err)
	}
	return tx, true, nil
}

func (s *Store) ListTransactions() ([]model.Transaction, error) {
	return s.queryTransactions(`SELECT ` + txColumns + ` FROM transactions` + txOrder)
}

func (s *Store) ListTransactionsForAccount(accountID uuid.UUID) ([]model.Transaction, error) {
	return s.queryTransactions(`SELECT `+txColumns+` FROM transactions WHERE account_id = ?`+txOrder, accountID.String())
}

// ListTransactionsBetween returns transactions dated within [start, end].
func (s *Store) ListTransactionsBetween(start, end time.Time) ([]model.Transaction, error) {
	return s.queryTransactions(
		`SELECT `+txColumns+` FROM transactions WHERE date >= ? AND date <= ?`+txOrder,
		start.Format(model.DateFormat), end.Format(model.DateFormat),
	)
}

// ListTransactionsNewerThan returns transactions dated strictly after date.
func (s *Store) ListTransactionsNewerThan(date time.Time) ([]model.Transaction, error) {
	return s.queryTransactions(
		`SELECT `+txColumns+` FROM transactions WHERE date > ?`+txOrder,
		date.Format(model.DateFormat),
	)
}

func (s *Store) DeleteTransaction(id uuid.UUID) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id.String())
	if err != nil {
		return 0, fmt.Errorf("deleting transaction %s: %w", id, err)
	}
	return rowsAffected(res)
}

func (s *Store) DeleteAllTransactions() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM transactions`)
	if err != nil {
		return 0, fmt.Errorf("deleting transactions: %w", err)
	}
	return rowsAffected(res)
}

func (s *Store) queryTransactions(query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	txns := []model.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, tx)
	}
	return txns, rows.Err()
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var (
		tx      model.Transaction
		account uuid.NullUUID
		date    string
		typ     string
	)
	if err := row.Scan(&tx.ID, &account, &tx.Name, &date, &tx.Amount, &typ, &tx.Notes); err != nil {
		return model.Transaction{}, err
	}

	d, err := model.ParseDate(date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing stored date %q: %w", date, err)
	}
	tx.Date = d
	tx.Type = model.TransType(typ)
	if account.Valid {
		tx.AccountID = account.UUID
	}
	return tx, nil
}

func accountRef(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id.String()
}
