package entity

import "time"

// TabStatus is three-valued on purpose: a tab is "closed" only when a
// TabClosureRecord exists, otherwise its state is genuinely unknown.
// Unknown must never be collapsed into closed or open.
type TabStatus string

const (
	TabStatusClosed  TabStatus = "closed"
	TabStatusUnknown TabStatus = "unknown"
)

// TabMetadata is the per-resource lifecycle summary derived from a group of
// visits sharing a URL. Computed fresh on every detection run, never stored.
type TabMetadata struct {
	URL                   string    `json:"url"`
	Domain                string    `json:"domain"`
	Title                 string    `json:"title"`
	VisitCount            int       `json:"visit_count"`
	IsSingleVisit         bool      `json:"is_single_visit"`
	FirstVisitedAt        time.Time `json:"first_visited_at"`
	LastVisitedAt         time.Time `json:"last_visited_at"`
	TabAgeDays            float64   `json:"tab_age_days"`
	DaysSinceLastActivity float64   `json:"days_since_last_activity"`
	TotalDurationSeconds  int       `json:"total_duration_seconds"`
	TotalEngagementSecs   int       `json:"total_engagement_seconds"`
	AverageEngagementRate float64   `json:"average_engagement_rate"`
	TabStatus             TabStatus `json:"tab_status"`

	// ActualTabDurationSeconds is the closure's recorded lifetime; nil while
	// the tab status is unknown.
	ActualTabDurationSeconds *int `json:"actual_tab_duration_seconds,omitempty"`

	// IsLikelyStillOpen is a heuristic, not a guarantee: it only says the
	// latest visit looks like an in-progress session. Always false once the
	// tab is known to be closed.
	IsLikelyStillOpen bool `json:"is_likely_still_open"`

	IsPinned bool `json:"is_pinned"`
}
