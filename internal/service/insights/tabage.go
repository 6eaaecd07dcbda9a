package insights

import (
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
)

const (
	recentVisitWindow         = time.Hour
	inProgressDurationSeconds = 1800
)

type TabAgeCalculator struct {
	now func() time.Time
}

func NewTabAgeCalculator() *TabAgeCalculator {
	return &TabAgeCalculator{now: time.Now}
}

// Calculate reduces a group of visits sharing a URL into lifecycle metadata.
// Returns nil for an empty group.
//
// Age and recency anchor on the closure time when one exists, never on
// "now" for a closed tab: a tab closed months ago would otherwise keep
// aging forever.
func (c *TabAgeCalculator) Calculate(visits []entity.VisitRecord, closure *entity.TabClosureRecord) *entity.TabMetadata {
	if len(visits) == 0 {
		return nil
	}

	first := visits[0]
	last := visits[0]
	totalDuration := 0
	totalEngagement := 0
	var rateSum float64
	pinned := false

	for _, v := range visits {
		if v.VisitedAt.Before(first.VisitedAt) {
			first = v
		}
		if v.VisitedAt.After(last.VisitedAt) {
			last = v
		}
		if v.DurationSeconds != nil {
			totalDuration += *v.DurationSeconds
		}
		if v.ActiveDurationSeconds != nil {
			totalEngagement += *v.ActiveDurationSeconds
		}
		// A nil engagement rate counts as 0 in the mean; dropping it
		// would bias the average upward.
		if v.EngagementRate != nil {
			rateSum += *v.EngagementRate
		}
		if v.Metadata.Pinned() {
			pinned = true
		}
	}

	anchor := c.now()
	status := entity.TabStatusUnknown
	var actualDuration *int
	if closure != nil {
		anchor = closure.ClosedAt
		status = entity.TabStatusClosed
		d := closure.TotalTimeSeconds
		actualDuration = &d
	}

	meta := &entity.TabMetadata{
		URL:                      last.URL,
		Domain:                   last.Domain,
		Title:                    last.Title,
		VisitCount:               len(visits),
		IsSingleVisit:            len(visits) == 1,
		FirstVisitedAt:           first.VisitedAt,
		LastVisitedAt:            last.VisitedAt,
		TabAgeDays:               daysBetween(first.VisitedAt, anchor),
		DaysSinceLastActivity:    daysBetween(last.VisitedAt, anchor),
		TotalDurationSeconds:     totalDuration,
		TotalEngagementSecs:      totalEngagement,
		AverageEngagementRate:    rateSum / float64(len(visits)),
		TabStatus:                status,
		ActualTabDurationSeconds: actualDuration,
		IsPinned:                 pinned,
	}
	meta.IsLikelyStillOpen = c.likelyStillOpen(status, last)

	return meta
}

// likelyStillOpen is a heuristic, not a guarantee: a tab of unknown status
// whose latest visit is under an hour old and still long-running is
// probably sitting open right now.
func (c *TabAgeCalculator) likelyStillOpen(status entity.TabStatus, last entity.VisitRecord) bool {
	if status == entity.TabStatusClosed {
		return false
	}
	if c.now().Sub(last.VisitedAt) > recentVisitWindow {
		return false
	}
	return last.DurationSeconds != nil && *last.DurationSeconds >= inProgressDurationSeconds
}

func daysBetween(from, to time.Time) float64 {
	days := to.Sub(from).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}
