package ledgercsv

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a non-negative amount, allowing one leading currency
// symbol: "$12.50", "€3", "42".
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if r, size := utf8.DecodeRuneInString(s); size > 0 && unicode.Is(unicode.Sc, r) {
		s = s[size:]
	}
	if s == "" {
		return decimal.Zero, &FormatError{Reason: fmt.Sprintf("empty amount %q", text)}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &FormatError{Reason: fmt.Sprintf("parsing amount %q", text), Err: err}
	}
	if d.IsNegative() {
		return decimal.Zero, &FormatError{Reason: fmt.Sprintf("negative amount %q", text)}
	}
	return d, nil
}

// DetermineAmount turns a debit/credit column pair into a signed amount.
// A debit is negative, a credit positive. If both are filled the debit wins;
// if neither is, the amount is zero and a warning is logged.
func (c *Codec) DetermineAmount(debit, credit string) (decimal.Decimal, error) {
	return c.determineAmount(debit, credit)
}

func (c *Codec) determineAmount(debit, credit string, attrs ...any) (decimal.Decimal, error) {
	switch {
	case strings.TrimSpace(debit) != "":
		d, err := ParseAmount(debit)
		if err != nil {
			return decimal.Zero, err
		}
		return d.Neg(), nil
	case strings.TrimSpace(credit) != "":
		return ParseAmount(credit)
	default:
		c.logger.Warn("no debit or credit amount, using zero", attrs...)
		return decimal.Zero, nil
	}
}

// SplitAmount renders a signed amount as debit and credit columns. Negative
// amounts go to the debit column as their absolute value, everything else to
// the credit column.
func SplitAmount(amount decimal.Decimal) (debit, credit string) {
	if amount.IsNegative() {
		return formatAmount(amount.Abs()), ""
	}
	return "", formatAmount(amount)
}

// formatAmount uses two decimal places unless the value carries more.
func formatAmount(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}
