package insights

import (
	"testing"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func fixedTabAge(now time.Time) *TabAgeCalculator {
	c := NewTabAgeCalculator()
	c.now = func() time.Time { return now }
	return c
}

func visitAt(t time.Time, url string) entity.VisitRecord {
	return entity.VisitRecord{
		UserID:    "u1",
		URL:       url,
		Domain:    "example.com",
		Title:     "Example",
		VisitedAt: t,
	}
}

func TestCalculateEmptyGroup(t *testing.T) {
	c := fixedTabAge(time.Now())
	assert.Nil(t, c.Calculate(nil, nil))
	assert.Nil(t, c.Calculate([]entity.VisitRecord{}, nil))
}

func TestCalculateWithoutClosureAnchorsOnNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := fixedTabAge(now)

	visits := []entity.VisitRecord{
		visitAt(now.Add(-72*time.Hour), "https://example.com/a"),
		visitAt(now.Add(-24*time.Hour), "https://example.com/a"),
	}

	meta := c.Calculate(visits, nil)
	require.NotNil(t, meta)
	assert.Equal(t, entity.TabStatusUnknown, meta.TabStatus)
	assert.Nil(t, meta.ActualTabDurationSeconds)
	assert.Equal(t, 2, meta.VisitCount)
	assert.False(t, meta.IsSingleVisit)
	assert.InDelta(t, 3, meta.TabAgeDays, 0.0001)
	assert.InDelta(t, 1, meta.DaysSinceLastActivity, 0.0001)
}

func TestCalculateWithClosureAnchorsOnClosedAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := fixedTabAge(now)

	opened := now.Add(-40 * 24 * time.Hour)
	closed := opened.Add(48 * time.Hour)

	visits := []entity.VisitRecord{visitAt(opened, "https://example.com/a")}
	closure := &entity.TabClosureRecord{
		URL:              "https://example.com/a",
		ClosedAt:         closed,
		TotalTimeSeconds: 7200,
	}

	meta := c.Calculate(visits, closure)
	require.NotNil(t, meta)
	assert.Equal(t, entity.TabStatusClosed, meta.TabStatus)
	require.NotNil(t, meta.ActualTabDurationSeconds)
	assert.Equal(t, 7200, *meta.ActualTabDurationSeconds)
	// A tab closed 38 days ago must not keep aging: anchor is the closure.
	assert.InDelta(t, 2, meta.TabAgeDays, 0.0001)
	assert.False(t, meta.IsLikelyStillOpen)
}

func TestCalculateAgeNeverNegative(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := fixedTabAge(now)

	visited := now.Add(-time.Hour)
	visits := []entity.VisitRecord{visitAt(visited, "https://example.com/a")}
	closure := &entity.TabClosureRecord{
		URL:      "https://example.com/a",
		ClosedAt: visited.Add(-2 * time.Hour), // closure clock skewed behind the visit
	}

	meta := c.Calculate(visits, closure)
	require.NotNil(t, meta)
	assert.GreaterOrEqual(t, meta.TabAgeDays, 0.0)
	assert.GreaterOrEqual(t, meta.DaysSinceLastActivity, 0.0)
	assert.GreaterOrEqual(t, meta.TabAgeDays, meta.DaysSinceLastActivity)
}

func TestCalculateAveragesTreatNilAsZero(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := fixedTabAge(now)

	v1 := visitAt(now.Add(-2*time.Hour), "https://example.com/a")
	v1.EngagementRate = floatPtr(0.8)
	v1.ActiveDurationSeconds = intPtr(120)
	v1.DurationSeconds = intPtr(600)

	v2 := visitAt(now.Add(-90*time.Minute), "https://example.com/a")
	// all counters nil: must drag the average down, not be skipped

	meta := c.Calculate([]entity.VisitRecord{v1, v2}, nil)
	require.NotNil(t, meta)
	assert.InDelta(t, 0.4, meta.AverageEngagementRate, 0.0001)
	assert.Equal(t, 120, meta.TotalEngagementSecs)
	assert.Equal(t, 600, meta.TotalDurationSeconds)
}

func TestCalculatePinnedFromMetadata(t *testing.T) {
	now := time.Now()
	c := fixedTabAge(now)

	v := visitAt(now.Add(-time.Hour), "https://example.com/a")
	v.Metadata = entity.Metadata{"pinned": true}

	meta := c.Calculate([]entity.VisitRecord{v}, nil)
	require.NotNil(t, meta)
	assert.True(t, meta.IsPinned)
}

func TestIsLikelyStillOpen(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := fixedTabAge(now)

	recent := visitAt(now.Add(-30*time.Minute), "https://example.com/a")
	recent.DurationSeconds = intPtr(3600)

	meta := c.Calculate([]entity.VisitRecord{recent}, nil)
	require.NotNil(t, meta)
	assert.True(t, meta.IsLikelyStillOpen)

	// Same visit but short-lived: no in-progress signal.
	short := recent
	short.DurationSeconds = intPtr(100)
	meta = c.Calculate([]entity.VisitRecord{short}, nil)
	assert.False(t, meta.IsLikelyStillOpen)

	// Same visit but stale: the hour window has passed.
	stale := visitAt(now.Add(-2*time.Hour), "https://example.com/a")
	stale.DurationSeconds = intPtr(3600)
	meta = c.Calculate([]entity.VisitRecord{stale}, nil)
	assert.False(t, meta.IsLikelyStillOpen)

	// A closed tab is never "likely still open".
	closure := &entity.TabClosureRecord{ClosedAt: now}
	meta = c.Calculate([]entity.VisitRecord{recent}, closure)
	assert.False(t, meta.IsLikelyStillOpen)
}
