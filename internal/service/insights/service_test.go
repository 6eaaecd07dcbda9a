package insights

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVisitRepository serves visits from memory with the same ordering
// contract as the SQL implementation.
type fakeVisitRepository struct {
	visits   []entity.VisitRecord
	closures []entity.TabClosureRecord
}

func (f *fakeVisitRepository) Create(_ context.Context, visit *entity.VisitRecord) error {
	f.visits = append(f.visits, *visit)
	return nil
}

func (f *fakeVisitRepository) BatchCreate(_ context.Context, visits []entity.VisitRecord) error {
	f.visits = append(f.visits, visits...)
	return nil
}

func (f *fakeVisitRepository) GetByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]entity.VisitRecord, error) {
	var out []entity.VisitRecord
	for _, v := range f.visits {
		if v.UserID == userID && !v.VisitedAt.Before(start) && v.VisitedAt.Before(end) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitedAt.Before(out[j].VisitedAt) })
	return out, nil
}

func (f *fakeVisitRepository) GetSince(_ context.Context, userID string, since time.Time) ([]entity.VisitRecord, error) {
	var out []entity.VisitRecord
	for _, v := range f.visits {
		if v.UserID == userID && !v.VisitedAt.Before(since) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitedAt.After(out[j].VisitedAt) })
	return out, nil
}

func (f *fakeVisitRepository) CreateClosure(_ context.Context, closure *entity.TabClosureRecord) error {
	f.closures = append(f.closures, *closure)
	return nil
}

func (f *fakeVisitRepository) GetClosureByURL(_ context.Context, userID, url string) (*entity.TabClosureRecord, error) {
	var latest *entity.TabClosureRecord
	for i := range f.closures {
		c := f.closures[i]
		if c.UserID == userID && c.URL == url {
			if latest == nil || c.ClosedAt.After(latest.ClosedAt) {
				latest = &f.closures[i]
			}
		}
	}
	return latest, nil
}

func newTestService(repo *fakeVisitRepository, now time.Time) *insightsService {
	s := NewInsightsService(repo, nil).(*insightsService)
	s.now = func() time.Time { return now }
	s.ranges.now = s.now
	s.tabAge.now = s.now
	return s
}

func TestGetHoarderReport(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeVisitRepository{}

	// A stale single-visit article: should be flagged.
	repo.visits = append(repo.visits, entity.VisitRecord{
		UserID:         "u1",
		URL:            "https://medium.com/@a/long-read",
		Domain:         "medium.com",
		Title:          "Long read",
		VisitedAt:      now.Add(-5 * 24 * time.Hour),
		EngagementRate: floatPtr(0.02),
	})

	// A pinned tab: excluded no matter how stale.
	repo.visits = append(repo.visits, entity.VisitRecord{
		UserID:    "u1",
		URL:       "https://mail.example.com/inbox",
		Domain:    "mail.example.com",
		VisitedAt: now.Add(-6 * 24 * time.Hour),
		Metadata:  entity.Metadata{"pinned": true},
	})

	// Fresh activity: not a hoarder.
	repo.visits = append(repo.visits, entity.VisitRecord{
		UserID:         "u1",
		URL:            "https://example.com/today",
		Domain:         "example.com",
		VisitedAt:      now.Add(-time.Hour),
		EngagementRate: floatPtr(0.7),
	})

	s := newTestService(repo, now)

	report, err := s.GetHoarderReport(context.Background(), "u1", "week", "", "")
	require.NoError(t, err)

	assert.Equal(t, 3, report.TabsChecked)
	require.Len(t, report.Hoarders, 1)

	h := report.Hoarders[0]
	assert.Equal(t, "https://medium.com/@a/long-read", h.URL)
	assert.Equal(t, entity.ConfidenceHigh, h.ConfidenceLevel)
	assert.Equal(t, entity.TabStatusUnknown, h.TabStatus)
	assert.Equal(t, entity.DomainTypeContentSite, h.DomainType)
	assert.NotEmpty(t, h.ScoreBreakdown)
}

func TestGetHoarderReportOrdering(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeVisitRepository{}

	for _, u := range []string{"https://medium.com/@a/one", "https://medium.com/@a/two"} {
		repo.visits = append(repo.visits, entity.VisitRecord{
			UserID:         "u1",
			URL:            u,
			Domain:         "medium.com",
			VisitedAt:      now.Add(-5 * 24 * time.Hour),
			EngagementRate: floatPtr(0.0),
		})
	}
	// A milder case scoring lower than the two above.
	repo.visits = append(repo.visits, entity.VisitRecord{
		UserID:         "u1",
		URL:            "https://example.com/mild",
		Domain:         "example.com",
		VisitedAt:      now.Add(-2 * 24 * time.Hour),
		EngagementRate: floatPtr(0.0),
	})

	s := newTestService(repo, now)
	report, err := s.GetHoarderReport(context.Background(), "u1", "week", "", "")
	require.NoError(t, err)
	require.Len(t, report.Hoarders, 3)

	for i := 1; i < len(report.Hoarders); i++ {
		prev, cur := report.Hoarders[i-1], report.Hoarders[i]
		if prev.Score == cur.Score {
			assert.Less(t, prev.URL, cur.URL)
		} else {
			assert.Greater(t, prev.Score, cur.Score)
		}
	}
}

func TestGetHoarderReportInvalidRange(t *testing.T) {
	s := newTestService(&fakeVisitRepository{}, time.Now())

	_, err := s.GetHoarderReport(context.Background(), "u1", "", "2026-01-05", "2026-01-01")
	require.Error(t, err)
	assert.True(t, IsInvalidDateRange(err))

	_, err = s.GetHoarderReport(context.Background(), "u1", "", "2026-01-01", "2026-01-01")
	require.Error(t, err)
	assert.True(t, IsInvalidDateRange(err))
}

func TestGetHoarderReportUsesClosureAnchor(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeVisitRepository{}

	url := "https://medium.com/@a/closed-long-ago"
	visited := now.Add(-6 * 24 * time.Hour)
	repo.visits = append(repo.visits, entity.VisitRecord{
		UserID:         "u1",
		URL:            url,
		Domain:         "medium.com",
		VisitedAt:      visited,
		EngagementRate: floatPtr(0.0),
	})
	repo.closures = append(repo.closures, entity.TabClosureRecord{
		UserID:   "u1",
		URL:      url,
		ClosedAt: visited.Add(time.Hour), // closed within the hour
	})

	s := newTestService(repo, now)
	report, err := s.GetHoarderReport(context.Background(), "u1", "week", "", "")
	require.NoError(t, err)

	// Closed promptly, so the tab never aged: nothing to report.
	assert.Empty(t, report.Hoarders)
}

func TestGetSerialOpenerReport(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeVisitRepository{}

	for i := 0; i < 10; i++ {
		repo.visits = append(repo.visits, entity.VisitRecord{
			UserID:                "u1",
			URL:                   "https://notion.so/page?v=" + string(rune('a'+i)),
			Domain:                "notion.so",
			VisitedAt:             now.Add(-time.Duration(i*5) * time.Hour),
			ActiveDurationSeconds: intPtr(3),
		})
	}

	s := newTestService(repo, now)
	report, err := s.GetSerialOpenerReport(context.Background(), "u1", "week", "", "", false)
	require.NoError(t, err)

	assert.InDelta(t, 7, report.DaysInPeriod, 0.0001)
	require.Len(t, report.SerialOpeners, 1)
	assert.Equal(t, 10, report.SerialOpeners[0].VisitCount)
	assert.Nil(t, report.Comparison)
}

func TestGetSerialOpenerReportComparison(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeVisitRepository{}

	// Current week: one serial opener.
	for i := 0; i < 6; i++ {
		repo.visits = append(repo.visits, entity.VisitRecord{
			UserID:                "u1",
			URL:                   "https://notion.so/current",
			Domain:                "notion.so",
			VisitedAt:             now.Add(-time.Duration(i*10) * time.Hour),
			ActiveDurationSeconds: intPtr(2),
		})
	}
	// Previous week: two.
	for _, u := range []string{"https://notion.so/old-a", "https://notion.so/old-b"} {
		for i := 0; i < 5; i++ {
			repo.visits = append(repo.visits, entity.VisitRecord{
				UserID:    "u1",
				URL:       u,
				Domain:    "notion.so",
				VisitedAt: now.Add(-8 * 24 * time.Hour).Add(time.Duration(i) * 5 * time.Hour),
			})
		}
	}

	s := newTestService(repo, now)
	report, err := s.GetSerialOpenerReport(context.Background(), "u1", "week", "", "", true)
	require.NoError(t, err)
	require.NotNil(t, report.Comparison)

	cmp := report.Comparison
	assert.Equal(t, report.PeriodStart, cmp.PreviousEnd)
	assert.Equal(t, 1, cmp.Current.TotalSerialOpeners)
	assert.Equal(t, 2, cmp.Previous.TotalSerialOpeners)
	assert.Equal(t, -1, cmp.Delta.TotalSerialOpeners)
	assert.Equal(t, 6-10, cmp.Delta.TotalVisits)
}

func TestGetRecentActivityDefaults(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeVisitRepository{}

	// Inside the default 24h window.
	repo.visits = append(repo.visits, entity.VisitRecord{
		UserID: "u1", URL: "https://a.example/1", Domain: "a.example",
		VisitedAt: now.Add(-2 * time.Hour),
	})
	// Outside it.
	repo.visits = append(repo.visits, entity.VisitRecord{
		UserID: "u1", URL: "https://b.example/1", Domain: "b.example",
		VisitedAt: now.Add(-30 * time.Hour),
	})

	s := newTestService(repo, now)

	sessions, err := s.GetRecentActivity(context.Background(), "u1", nil, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, []string{"a.example"}, sessions[0].Domains)

	// An explicit cutoff widens the window.
	since := now.Add(-48 * time.Hour)
	sessions, err = s.GetRecentActivity(context.Background(), "u1", &since, 0)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}
