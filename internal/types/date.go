package types

import (
	"time"

	ierr "github.com/Kabele/invoicely/internal/errors"
)

// DateFormat is the wire format for calendar dates (due dates, payment dates)
const DateFormat = "2006-01-02"

// ParseDate parses a calendar date in the wire format, normalized to UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("invalid date %q, expected YYYY-MM-DD", s).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// FormatDate renders a calendar date in the wire format
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// TruncateToDay drops the time-of-day component in UTC
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPastDay reports whether t falls on a calendar day strictly before now.
// Comparison is date-only in UTC, so an invoice is never overdue on its due date.
func IsPastDay(t, now time.Time) bool {
	return TruncateToDay(t).Before(TruncateToDay(now))
}
