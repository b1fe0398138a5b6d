package ledgercsv

import (
	"errors"
	"fmt"
	"strings"
)

// Section names used in FormatError.
const (
	SectionAccounts     = "accounts"
	SectionTransactions = "transactions"
	SectionLegacy       = "legacy"
)

// FormatError reports input that cannot be decoded. It aborts the whole
// document.
type FormatError struct {
	Section string // empty for document-level errors
	Line    int    // 1-based line within the section, 0 if not line specific
	Reason  string
	Err     error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("ledger csv")
	if e.Section != "" {
		b.WriteString(": ")
		b.WriteString(e.Section)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

// ErrNoAccount is returned by DecodeLegacy when no target account is given.
var ErrNoAccount = errors.New("legacy import requires a target account")

// at attaches a location to a FormatError produced further down.
func at(err error, section string, line int) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		if fe.Section == "" {
			fe.Section = section
		}
		if fe.Line == 0 {
			fe.Line = line
		}
		return fe
	}
	return &FormatError{Section: section, Line: line, Reason: "invalid row", Err: err}
}
