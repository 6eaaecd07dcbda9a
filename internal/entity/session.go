package entity

import "time"

type SessionType string

const (
	SessionResearch    SessionType = "research_session"
	SessionBrowsing    SessionType = "browsing_session"
	SessionQuickSearch SessionType = "quick_search"
	SessionBriefVisit  SessionType = "brief_visit"
)

// Session is a burst of browsing activity whose internal gaps never exceed
// the clustering threshold.
type Session struct {
	StartedAt       time.Time   `json:"started_at"`
	EndedAt         time.Time   `json:"ended_at"`
	DurationSeconds int         `json:"duration_seconds"`
	VisitCount      int         `json:"visit_count"`
	Domains         []string    `json:"domains"`
	AvgEngagement   float64     `json:"avg_engagement"`
	Type            SessionType `json:"type"`
}
