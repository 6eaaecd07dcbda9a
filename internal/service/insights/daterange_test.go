package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCalculator(now time.Time) *DateRangeCalculator {
	c := NewDateRangeCalculator()
	c.now = func() time.Time { return now }
	return c
}

func TestParsePresets(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	c := fixedCalculator(now)

	tests := []struct {
		period string
		days   float64
		label  string
	}{
		{"today", 1, "today"},
		{"week", 7, "week"},
		{"month", 30, "month"},
		{"", 7, "week"},
		{"quarter", 7, "week"}, // unknown presets fall back, never error
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			r, err := c.Parse(tt.period, "", "")
			require.NoError(t, err)
			assert.Equal(t, now, r.End)
			assert.Equal(t, tt.label, r.PeriodLabel)
			assert.False(t, r.IsCustom)
			assert.InDelta(t, tt.days, c.DaysInRange(r), 0.0001)
		})
	}
}

func TestParseCustomRange(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))

	r, err := c.Parse("", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.True(t, r.IsCustom)
	assert.Equal(t, "custom", r.PeriodLabel)
	assert.InDelta(t, 30, c.DaysInRange(r), 0.0001)
}

func TestParseCustomRangeTakesPrecedenceOverPeriod(t *testing.T) {
	c := fixedCalculator(time.Now())

	r, err := c.Parse("month", "2026-01-01", "2026-01-08")
	require.NoError(t, err)
	assert.True(t, r.IsCustom)
	assert.InDelta(t, 7, c.DaysInRange(r), 0.0001)
}

func TestParseCustomRangeErrors(t *testing.T) {
	c := fixedCalculator(time.Now())

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"start equals end", "2026-01-01", "2026-01-01"},
		{"start after end", "2026-02-01", "2026-01-01"},
		{"unparsable start", "01/01/2026", "2026-01-31"},
		{"unparsable end", "2026-01-01", "soon"},
		{"missing end", "2026-01-01", ""},
		{"span over 90 days", "2026-01-01", "2026-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Parse("", tt.start, tt.end)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDateRange)
		})
	}
}

func TestParseCustomRangeAtNinetyDayCap(t *testing.T) {
	c := fixedCalculator(time.Now())

	r, err := c.Parse("", "2026-01-01", "2026-04-01")
	require.NoError(t, err)
	assert.InDelta(t, 90, c.DaysInRange(r), 0.0001)
}

func TestPreviousPeriod(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	c := fixedCalculator(now)

	r, err := c.Parse("week", "", "")
	require.NoError(t, err)

	prev := c.PreviousPeriod(r)
	assert.Equal(t, r.Start, prev.End)
	assert.Equal(t, r.End.Sub(r.Start), prev.End.Sub(prev.Start))
	assert.Equal(t, r.PeriodLabel, prev.PeriodLabel)
}
