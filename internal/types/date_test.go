package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/03/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestIsPastDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	assert.True(t, IsPastDay(time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC), now))
	assert.False(t, IsPastDay(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsPastDay(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), now))

	// time of day never matters, only the calendar day
	assert.False(t, IsPastDay(time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC), now))
}

func TestDefaultsForCategory(t *testing.T) {
	d := DefaultsForCategory(InvoiceCategoryRepairs)
	assert.Equal(t, "Initial deposit of 70% required.", d.Notes)
	assert.Equal(t, "5", d.TaxRate.String())

	unknown := DefaultsForCategory("something-else")
	assert.Empty(t, unknown.Notes)
	assert.True(t, unknown.TaxRate.IsZero())
}

func TestGenerateShortIDWithPrefix(t *testing.T) {
	id := GenerateShortIDWithPrefix(SHORT_ID_PREFIX_RECEIPT)
	assert.True(t, len(id) <= 12, "got %q", id)
	assert.Contains(t, id, "RCT-")
}
