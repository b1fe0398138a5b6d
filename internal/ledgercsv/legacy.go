package ledgercsv

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/model"
)

const (
	numLegacyFields = 5
	lgColName       = 0
	lgColDebit      = 1
	lgColCredit     = 2
	lgColDate       = 3
	lgColNotes      = 4
)

// DecodeLegacy decodes a single-account legacy document. Every row becomes a
// transaction on accountID with its type inferred from date and notes.
// Malformed rows are skipped with a warning rather than failing the import.
func (c *Codec) DecodeLegacy(text string, accountID uuid.UUID) ([]model.Transaction, error) {
	if accountID == uuid.Nil {
		return nil, ErrNoAccount
	}

	now := c.now()
	txns := []model.Transaction{}
	skipped := 0
	for n, line := range sectionRows(text) {
		if line == "" {
			continue
		}
		tx, err := c.unmarshalLegacy(strings.SplitN(line, ",", numLegacyFields), accountID, now)
		if err != nil {
			skipped++
			c.logger.Warn("skipping legacy row", "line", n+1, "reason", err.Error())
			continue
		}
		txns = append(txns, tx)
	}

	c.logger.Info("decoded legacy transactions", "account", accountID, "count", len(txns), "skipped", skipped)
	return txns, nil
}

func (c *Codec) unmarshalLegacy(record []string, accountID uuid.UUID, now time.Time) (model.Transaction, error) {
	if len(record) != numLegacyFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numLegacyFields, len(record))
	}

	amount, err := c.determineAmount(record[lgColDebit], record[lgColCredit], "transaction", record[lgColName])
	if err != nil {
		return model.Transaction{}, err
	}

	when, ok := ParseLegacyDate(record[lgColDate], now)
	if !ok && strings.TrimSpace(record[lgColDate]) != "" {
		c.logger.Warn("unparsable legacy date, using import time", "date", record[lgColDate])
	}
	notes := record[lgColNotes]

	return model.Transaction{
		ID:        c.newID(),
		AccountID: accountID,
		Name:      record[lgColName],
		Date:      model.DateOf(when),
		Amount:    amount,
		Type:      InferType(when, notes, now),
		Notes:     notes,
	}, nil
}
