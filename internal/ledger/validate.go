package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sixtey7/fjledger/internal/accounts"
	"github.com/sixtey7/fjledger/internal/model"
	"github.com/sixtey7/fjledger/internal/store"
)

// ErrIDAssigned is returned when an add is given an entity that already has an ID.
var ErrIDAssigned = errors.New("id already assigned, use update to modify an existing record")

// ValidationError describes a rejected field on an account or transaction.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validateAccount(a model.Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return ValidationError{Field: "name", Reason: "account name is required"}
	}
	return nil
}

// checkUniqueNames rejects candidates whose names collide with each other
// or with a stored account other than themselves.
func checkUniqueNames(repo store.Repository, candidates ...model.Account) error {
	if dups := accounts.DuplicateNames(candidates); len(dups) > 0 {
		return duplicateName(dups[0])
	}
	existing, err := repo.ListAccounts()
	if err != nil {
		return err
	}
	byName := accounts.NameToID(existing)
	for _, c := range candidates {
		if other, ok := byName[c.Name]; ok && other != c.ID {
			return duplicateName(c.Name)
		}
	}
	return nil
}

func duplicateName(name string) error {
	return ValidationError{Field: "name", Reason: fmt.Sprintf("an account named %q already exists", name)}
}

// availableName returns base, or base with the lowest free " (n)" suffix
// when another account already uses it.
func availableName(repo store.Repository, base string) (string, error) {
	existing, err := repo.ListAccounts()
	if err != nil {
		return "", err
	}
	taken := accounts.NameToID(existing)
	name := base
	for n := 2; ; n++ {
		if _, ok := taken[name]; !ok {
			return name, nil
		}
		name = fmt.Sprintf("%s (%d)", base, n)
	}
}

// normalizeTransaction validates tx and fills in its defaults: a missing date
// becomes today, a missing type becomes FUTURE.
func normalizeTransaction(tx model.Transaction, now time.Time) (model.Transaction, error) {
	if strings.TrimSpace(tx.Name) == "" {
		return tx, ValidationError{Field: "name", Reason: "transaction name is required"}
	}

	if tx.Type == "" {
		tx.Type = model.TransFuture
	} else if _, err := model.ParseTransType(string(tx.Type)); err != nil {
		return tx, ValidationError{Field: "type", Reason: err.Error()}
	}

	if tx.Date.IsZero() {
		tx.Date = now
	}
	tx.Date = model.DateOf(tx.Date)
	return tx, nil
}
