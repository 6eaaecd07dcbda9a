package insights

import (
	"sort"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/pkg/utils"
)

const (
	// SessionGapSeconds is the inactivity gap that splits two sessions.
	SessionGapSeconds = 600

	DefaultRecentActivityLimit = 20
	MaxRecentActivityLimit     = 100

	researchMinDurationSeconds = 1800
	researchMinVisits          = 10
	browsingMinDurationSeconds = 600
	quickSearchMinVisits       = 5
)

type SessionClusterer struct{}

func NewSessionClusterer() *SessionClusterer {
	return &SessionClusterer{}
}

// Cluster walks visits ordered descending by time and starts a new session
// whenever the gap to the previous visit exceeds SessionGapSeconds. The
// returned list is ordered by session start descending and truncated to
// limit (clamped to [1, 100], default 20).
func (c *SessionClusterer) Cluster(visits []entity.VisitRecord, limit int) []entity.Session {
	limit = clampLimit(limit)
	if len(visits) == 0 {
		return nil
	}

	var sessions []entity.Session
	start := 0
	for i := 1; i <= len(visits); i++ {
		if i == len(visits) || visits[i-1].VisitedAt.Sub(visits[i].VisitedAt) > SessionGapSeconds*time.Second {
			sessions = append(sessions, c.buildSession(visits[start:i]))
			start = i
		}
	}

	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	return sessions
}

// buildSession summarizes one descending-ordered chunk of visits.
func (c *SessionClusterer) buildSession(chunk []entity.VisitRecord) entity.Session {
	startedAt := chunk[len(chunk)-1].VisitedAt
	endedAt := chunk[0].VisitedAt
	duration := int(endedAt.Sub(startedAt).Seconds())

	domainSet := make(map[string]bool)
	var rateSum float64
	for _, v := range chunk {
		domainSet[v.Domain] = true
		// nil engagement counts as 0, never excluded from the denominator
		if v.EngagementRate != nil {
			rateSum += *v.EngagementRate
		}
	}

	domains := make([]string, 0, len(domainSet))
	for d := range domainSet {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	return entity.Session{
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		DurationSeconds: duration,
		VisitCount:      len(chunk),
		Domains:         domains,
		AvgEngagement:   utils.RoundToTwoDecimals(rateSum / float64(len(chunk))),
		Type:            classifySession(duration, len(chunk)),
	}
}

func classifySession(durationSeconds, visitCount int) entity.SessionType {
	switch {
	case durationSeconds > researchMinDurationSeconds && visitCount > researchMinVisits:
		return entity.SessionResearch
	case durationSeconds > browsingMinDurationSeconds:
		return entity.SessionBrowsing
	case visitCount > quickSearchMinVisits:
		return entity.SessionQuickSearch
	default:
		return entity.SessionBriefVisit
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentActivityLimit
	}
	if limit > MaxRecentActivityLimit {
		return MaxRecentActivityLimit
	}
	return limit
}
