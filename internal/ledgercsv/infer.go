package ledgercsv

import (
	"strings"
	"time"

	"github.com/sixtey7/fjledger/internal/model"
)

// LegacyDateFormat is the M/D/YY layout of legacy exports. Month and day
// may be one or two digits.
const LegacyDateFormat = "1/2/06"

// ParseLegacyDate parses a legacy M/D/YY date in UTC. Empty or unparsable
// text yields now, with ok set to false.
func ParseLegacyDate(text string, now time.Time) (date time.Time, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return now, false
	}
	d, err := time.ParseInLocation(LegacyDateFormat, s, time.UTC)
	if err != nil {
		return now, false
	}
	return d, true
}

// InferType guesses a legacy transaction's type. Anything dated before now
// has happened; otherwise the notes are searched for "est" and then
// "planned". The match is a case-sensitive substring test, so "interest"
// counts as an estimate.
func InferType(date time.Time, notes string, now time.Time) model.TransType {
	switch {
	case date.Before(now):
		return model.TransConfirmed
	case strings.Contains(notes, "est"):
		return model.TransEstimate
	case strings.Contains(notes, "planned"):
		return model.TransPlanned
	default:
		return model.TransFuture
	}
}
