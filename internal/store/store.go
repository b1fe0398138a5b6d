// Package store persists accounts and transactions in SQLite.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sixtey7/fjledger/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Repository is the persistence surface used by the ledger service.
type Repository interface {
	CreateAccount(a model.Account) error
	UpdateAccount(a model.Account) error
	GetAccount(id uuid.UUID) (model.Account, bool, error)
	ListAccounts() ([]model.Account, error)
	DeleteAccount(id uuid.UUID) (int64, error)
	DeleteAllAccounts() (int64, error)

	CreateTransaction(tx model.Transaction) error
	UpdateTransaction(tx model.Transaction) error
	GetTransaction(id uuid.UUID) (model.Transaction, bool, error)
	ListTransactions() ([]model.Transaction, error)
	ListTransactionsForAccount(accountID uuid.UUID) ([]model.Transaction, error)
	ListTransactionsBetween(start, end time.Time) ([]model.Transaction, error)
	ListTransactionsNewerThan(date time.Time) ([]model.Transaction, error)
	DeleteTransaction(id uuid.UUID) (int64, error)
	DeleteAllTransactions() (int64, error)

	// ExecTx runs fn against a Repository bound to one database transaction,
	// committing if fn returns nil and rolling back otherwise.
	ExecTx(fn func(Repository) error) error
}

type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store is the SQLite Repository.
type Store struct {
	db DBTX
}

var _ Repository = (*Store)(nil)

// Open opens (creating if needed) the database at dbPath and migrates it to
// the latest schema.
func Open(dbPath string) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dbDir, err)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &Store{db: db}, nil
}

// ExecTx implements Repository.
func (s *Store) ExecTx(fn func(Repository) error) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return errors.New("store is already in a transaction")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(&Store{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %w", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if db, ok := s.db.(*sql.DB); ok {
		return db.Close()
	}
	return nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("setting up migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("reading embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("setting up migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations up: %w", err)
	}
	return nil
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return n, nil
}
