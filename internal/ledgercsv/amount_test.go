package ledgercsv

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineAmount(t *testing.T) {
	tests := []struct {
		debit  string
		credit string
		want   string
	}{
		{"$12.50", "", "-12.50"},
		{"", "30", "30"},
		{"", "", "0"},
		{"5", "7", "-5"},
		{"€3.10", "", "-3.10"},
		{"", "$0.01", "0.01"},
		{" 42 ", "", "-42"},
	}
	for _, tt := range tests {
		c, _ := newTestCodec()
		got, err := c.DetermineAmount(tt.debit, tt.credit)
		require.NoError(t, err, "DetermineAmount(%q, %q)", tt.debit, tt.credit)
		assert.True(t, got.Equal(dec(tt.want)), "DetermineAmount(%q, %q) = %s, want %s", tt.debit, tt.credit, got, tt.want)
	}
}

func TestDetermineAmount_EmptyWarns(t *testing.T) {
	c, logs := newTestCodec()
	got, err := c.DetermineAmount("", "")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Contains(t, logs.String(), "no debit or credit amount")
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestDetermineAmount_PackageLevel(t *testing.T) {
	got, err := DetermineAmount("$12.50", "")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("-12.50")))
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, s := range []string{"abc", "$", "-5", "$-5", "1,000", "$$5", "12.5.0"} {
		_, err := ParseAmount(s)
		require.Error(t, err, "ParseAmount(%q)", s)
		var fe *FormatError
		assert.True(t, errors.As(err, &fe), "ParseAmount(%q) should return a FormatError", s)
	}
}

func TestParseAmount_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"12.50", "12.50"},
		{"$1000", "1000"},
		{"£0.99", "0.99"},
		{"¥500", "500"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "ParseAmount(%q)", tt.in)
		assert.True(t, got.Equal(dec(tt.want)), "ParseAmount(%q) = %s", tt.in, got)
	}
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		amount     decimal.Decimal
		wantDebit  string
		wantCredit string
	}{
		{dec("-12.5"), "12.50", ""},
		{dec("30"), "", "30.00"},
		{decimal.Zero, "", "0.00"},
		{dec("0.125"), "", "0.125"},
		{dec("-3500"), "3500.00", ""},
	}
	for _, tt := range tests {
		debit, credit := SplitAmount(tt.amount)
		assert.Equal(t, tt.wantDebit, debit, "debit for %s", tt.amount)
		assert.Equal(t, tt.wantCredit, credit, "credit for %s", tt.amount)
	}
}

func TestSplitAmountRoundTrip(t *testing.T) {
	for _, s := range []string{"-12.50", "30", "0", "0.1", "-0.01", "99999.99"} {
		c, _ := newTestCodec()
		debit, credit := SplitAmount(dec(s))
		got, err := c.DetermineAmount(debit, credit)
		require.NoError(t, err)
		assert.True(t, got.Equal(dec(s)), "%s survived as %s", s, got)
	}
}
