package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-12-20", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"20-12-2024", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestDateArithmetic(t *testing.T) {
	t.Parallel()

	a := MustParseDate("2024-12-18")
	b := MustParseDate("2024-12-20")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 2, b.DaysSince(a))
	assert.Equal(t, -2, a.DaysSince(b))

	// Across a DST boundary in a local zone the day count is still whole.
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	before := DateOf(time.Date(2024, 3, 9, 23, 0, 0, 0, loc))
	after := DateOf(time.Date(2024, 3, 11, 1, 0, 0, 0, loc))
	assert.Equal(t, 2, after.DaysSince(before))
}

func TestDaysSinceFarDates(t *testing.T) {
	t.Parallel()

	today := MustParseDate("2026-10-18")

	tests := []struct {
		date string
		want int
	}{
		{"2400-01-01", 136310},
		{"1600-01-01", -155884},
		{"9999-12-31", 2912152},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d := MustParseDate(tt.date)
			assert.Equal(t, tt.want, d.DaysSince(today))
			assert.Equal(t, -tt.want, today.DaysSince(d))
		})
	}
}

func TestDateJSONAndScan(t *testing.T) {
	t.Parallel()

	d := MustParseDate("2024-12-20")
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-12-20"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)

	var scanned Date
	require.NoError(t, scanned.Scan([]byte("2024-12-20")))
	assert.Equal(t, d, scanned)

	require.NoError(t, scanned.Scan(time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, d, scanned)

	assert.Error(t, scanned.Scan(42))
}
