package ledgercsv

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/accounts"
	"github.com/sixtey7/fjledger/internal/model"
)

// SectionMarker separates the accounts and transactions sections.
const SectionMarker = "~!~"

const (
	AccountsHeader     = SectionMarker + ",Accounts"
	TransactionsHeader = SectionMarker + ",Transactions"

	LabelDynamic    = "Dynamic"
	LabelCalculated = "Calculated"
)

const (
	numAccountFields = 5
	acctColName      = 0
	acctColDebit     = 1
	acctColCredit    = 2
	acctColNotes     = 3
	acctColKind      = 4

	numTxFields  = 7
	txColName    = 0
	txColDebit   = 1
	txColCredit  = 2
	txColAccount = 3
	txColDate    = 4
	txColType    = 5
	txColNotes   = 6
)

// DecodeLedger decodes a two-section ledger document. Accounts get fresh IDs
// and transactions are linked to them by exact account name. A transaction
// naming an unknown account is kept with no account reference.
func (c *Codec) DecodeLedger(text string) ([]model.Account, []model.Transaction, error) {
	sections := strings.Split(text, SectionMarker)

	var acctText, txText string
	switch {
	case len(sections) == 2:
		acctText, txText = sections[0], sections[1]
	case len(sections) == 3 && sections[0] == "":
		// Documents normally start with the marker, leaving an empty first split.
		acctText, txText = sections[1], sections[2]
	default:
		c.logger.Error("wrong number of ledger sections", "expected", 2, "got", len(sections))
		return nil, nil, &FormatError{Reason: fmt.Sprintf("expected 2 sections, got %d", len(sections))}
	}

	accts, err := c.decodeAccounts(acctText)
	if err != nil {
		return nil, nil, err
	}
	c.logger.Info("decoded accounts", "count", len(accts))
	for _, name := range accounts.DuplicateNames(accts) {
		c.logger.Warn("duplicate account name, transactions link to the last one", "name", name)
	}

	txns, err := c.decodeTransactions(txText, accounts.NameToID(accts))
	if err != nil {
		return nil, nil, err
	}
	c.logger.Info("decoded transactions", "count", len(txns))

	return accts, txns, nil
}

func (c *Codec) decodeAccounts(section string) ([]model.Account, error) {
	accts := []model.Account{}
	for n, line := range sectionRows(section) {
		if n == 0 || line == "" {
			continue
		}
		acct, err := c.UnmarshalAccount(strings.SplitN(line, ",", numAccountFields))
		if err != nil {
			return nil, at(err, SectionAccounts, n+1)
		}
		accts = append(accts, acct)
	}
	return accts, nil
}

func (c *Codec) decodeTransactions(section string, nameToID map[string]uuid.UUID) ([]model.Transaction, error) {
	txns := []model.Transaction{}
	for n, line := range sectionRows(section) {
		if n == 0 || line == "" {
			continue
		}
		tx, err := c.UnmarshalTransaction(strings.SplitN(line, ",", numTxFields), nameToID)
		if err != nil {
			return nil, at(err, SectionTransactions, n+1)
		}
		if !tx.HasAccount() {
			c.logger.Warn("transaction references unknown account",
				"line", n+1, "transaction", tx.Name, "account", fieldAt(line, txColAccount))
		}
		txns = append(txns, tx)
	}
	return txns, nil
}

// UnmarshalAccount converts an account row to an Account with a fresh ID.
func (c *Codec) UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numAccountFields {
		return model.Account{}, &FormatError{Reason: fmt.Sprintf("expected %d fields, got %d", numAccountFields, len(record))}
	}

	amount, err := c.determineAmount(record[acctColDebit], record[acctColCredit], "account", record[acctColName])
	if err != nil {
		return model.Account{}, err
	}

	return model.Account{
		ID:      c.newID(),
		Name:    record[acctColName],
		Amount:  amount,
		Notes:   record[acctColNotes],
		Dynamic: record[acctColKind] != LabelCalculated,
	}, nil
}

// UnmarshalTransaction converts a transaction row to a Transaction with a
// fresh ID. The account column is resolved through nameToID.
func (c *Codec) UnmarshalTransaction(record []string, nameToID map[string]uuid.UUID) (model.Transaction, error) {
	if len(record) != numTxFields {
		return model.Transaction{}, &FormatError{Reason: fmt.Sprintf("expected %d fields, got %d", numTxFields, len(record))}
	}

	amount, err := c.determineAmount(record[txColDebit], record[txColCredit], "transaction", record[txColName])
	if err != nil {
		return model.Transaction{}, err
	}

	date := model.DateOf(c.now())
	if record[txColDate] != "" {
		date, err = model.ParseDate(record[txColDate])
		if err != nil {
			return model.Transaction{}, &FormatError{Reason: fmt.Sprintf("parsing date %q", record[txColDate]), Err: err}
		}
	}

	typ := model.TransFuture
	if record[txColType] != "" {
		typ, err = model.ParseTransType(record[txColType])
		if err != nil {
			return model.Transaction{}, &FormatError{Reason: "parsing type", Err: err}
		}
	}

	return model.Transaction{
		ID:        c.newID(),
		AccountID: nameToID[record[txColAccount]],
		Name:      record[txColName],
		Date:      date,
		Amount:    amount,
		Type:      typ,
		Notes:     record[txColNotes],
	}, nil
}

// EncodeLedger renders accounts and transactions as a two-section document.
func EncodeLedger(accts []model.Account, txns []model.Transaction) string {
	var b strings.Builder
	b.WriteString(AccountsHeader)
	b.WriteByte('\n')
	b.WriteString(EncodeAccounts(accts))
	b.WriteString(TransactionsHeader)
	b.WriteByte('\n')
	b.WriteString(EncodeTransactions(txns, accounts.IDToName(accts)))
	return b.String()
}

// EncodeAccounts renders one line per account, without a section header.
func EncodeAccounts(accts []model.Account) string {
	var b strings.Builder
	for _, a := range accts {
		b.WriteString(strings.Join(MarshalAccount(a), ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// EncodeTransactions renders one line per transaction, without a section
// header. Transactions whose account is missing from idToName get an empty
// account column.
func EncodeTransactions(txns []model.Transaction, idToName map[uuid.UUID]string) string {
	var b strings.Builder
	for _, tx := range txns {
		b.WriteString(strings.Join(MarshalTransaction(tx, idToName[tx.AccountID]), ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// MarshalAccount converts an Account to a row.
func MarshalAccount(a model.Account) []string {
	row := make([]string, numAccountFields)
	row[acctColName] = a.Name
	row[acctColDebit], row[acctColCredit] = SplitAmount(a.Amount)
	row[acctColNotes] = a.Notes
	row[acctColKind] = LabelDynamic
	if !a.Dynamic {
		row[acctColKind] = LabelCalculated
	}
	return row
}

// MarshalTransaction converts a Transaction to a row, naming its account.
func MarshalTransaction(tx model.Transaction, accountName string) []string {
	row := make([]string, numTxFields)
	row[txColName] = tx.Name
	row[txColDebit], row[txColCredit] = SplitAmount(tx.Amount)
	row[txColAccount] = accountName
	row[txColDate] = tx.Date.Format(model.DateFormat)
	row[txColType] = string(tx.Type)
	if tx.Type == "" {
		row[txColType] = string(model.TransFuture)
	}
	row[txColNotes] = tx.Notes
	return row
}

// sectionRows splits a section into lines, dropping carriage returns and
// blanking whitespace-only lines.
func sectionRows(section string) []string {
	lines := strings.Split(section, "\n")
	for i, l := range lines {
		l = strings.TrimSuffix(l, "\r")
		if strings.TrimSpace(l) == "" {
			l = ""
		}
		lines[i] = l
	}
	return lines
}

func fieldAt(line string, col int) string {
	fields := strings.SplitN(line, ",", numTxFields)
	if col < len(fields) {
		return fields[col]
	}
	return ""
}
