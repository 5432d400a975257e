package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", r.From.String())
	assert.Equal(t, "2025-01-31", r.To.String())

	open, err := ParseDateRange("", " ")
	require.NoError(t, err)
	assert.True(t, open.From.IsZero())
	assert.True(t, open.To.IsZero())

	_, err = ParseDateRange("2025-02-01", "2025-01-01")
	require.Error(t, err)

	_, err = ParseDateRange("01/02/2025", "")
	require.Error(t, err)
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{From: NewDate(2025, time.January, 1), To: NewDate(2025, time.January, 31)}

	assert.True(t, r.Contains(NewDate(2025, time.January, 1)))
	assert.True(t, r.Contains(NewDate(2025, time.January, 31)))
	assert.False(t, r.Contains(NewDate(2024, time.December, 31)))
	assert.False(t, r.Contains(NewDate(2025, time.February, 1)))
	assert.False(t, r.Contains(Date{}))

	assert.True(t, r.ContainsTime(time.Date(2025, time.January, 31, 23, 59, 0, 0, time.UTC)))

	open := DateRange{}
	assert.True(t, open.Contains(NewDate(1999, time.May, 5)))
	assert.True(t, open.Contains(Date{}))
}
