package accounts

import (
	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/model"
)

// NameToID maps account names to IDs. When names collide the later account
// wins.
func NameToID(accounts []model.Account) map[string]uuid.UUID {
	m := make(map[string]uuid.UUID, len(accounts))
	for _, a := range accounts {
		m[a.Name] = a.ID
	}
	return m
}

// DuplicateNames returns each name held by more than one account, in order
// of its second occurrence.
func DuplicateNames(accounts []model.Account) []string {
	seen := make(map[string]int, len(accounts))
	var dups []string
	for _, a := range accounts {
		seen[a.Name]++
		if seen[a.Name] == 2 {
			dups = append(dups, a.Name)
		}
	}
	return dups
}

// IDToName maps account IDs to names.
func IDToName(accounts []model.Account) map[uuid.UUID]string {
	m := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a.Name
	}
	return m
}

// Find returns the account with the given ID.
func Find(accounts []model.Account, id uuid.UUID) (model.Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}
