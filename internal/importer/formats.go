package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sixtey7/fjledger/internal/ledgercsv"
	"github.com/sixtey7/fjledger/internal/model"
)

// LedgerImporter handles the two-section accounts/transactions export.
type LedgerImporter struct{}

func (p *LedgerImporter) Format() string { return "ledger" }

// Detect reports whether text contains a section marker line.
func (p *LedgerImporter) Detect(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ledgercsv.SectionMarker) {
			return true
		}
	}
	return false
}

func (p *LedgerImporter) Import(l Ledger, text string, opts Options) (model.Update, error) {
	return l.ImportLedger(text, opts.Replace)
}

// LegacyImporter handles single-account name,debit,credit,MM/DD/YY,notes rows.
type LegacyImporter struct{}

func (p *LegacyImporter) Format() string { return "legacy" }

// Detect reports whether the first non-blank line has the legacy field count.
func (p *LegacyImporter) Detect(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return len(strings.SplitN(line, ",", 5)) == 5
	}
	return false
}

func (p *LegacyImporter) Import(l Ledger, text string, opts Options) (model.Update, error) {
	if opts.AccountID == uuid.Nil {
		return l.ImportLegacyNewAccount(text)
	}
	return l.ImportLegacy(text, opts.AccountID)
}
