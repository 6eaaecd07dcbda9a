package entity

import "time"

type BehaviorType string

const (
	BehaviorCompulsiveChecking BehaviorType = "compulsive_checking"
	BehaviorFrequentMonitoring BehaviorType = "frequent_monitoring"
	BehaviorRegularReference   BehaviorType = "regular_reference"
	BehaviorPeriodicRevisit    BehaviorType = "periodic_revisit"
)

type EngagementType string

const (
	EngagementQuickGlance EngagementType = "quick_glance"
	EngagementBriefCheck  EngagementType = "brief_check"
	EngagementScan        EngagementType = "scan"
	EngagementShallowWork EngagementType = "shallow_work"
	EngagementDeep        EngagementType = "deep_engagement"
)

// SerialOpener is a resource repeatedly re-opened without ever being
// substantively consumed. URLs differing only in volatile query parameters
// collapse into one entry under NormalizedURL.
type SerialOpener struct {
	NormalizedURL          string         `json:"normalized_url"`
	Domain                 string         `json:"domain"`
	Title                  string         `json:"title"`
	VisitCount             int            `json:"visit_count"`
	TimeSpanHours          float64        `json:"time_span_hours"`
	AvgHoursBetweenVisits  float64        `json:"avg_hours_between_visits"`
	VisitsPerDay           float64        `json:"visits_per_day"`
	TotalEngagementSeconds int            `json:"total_engagement_seconds"`
	BehaviorType           BehaviorType   `json:"behavior_type"`
	EngagementType         EngagementType `json:"engagement_type"`
	InferredPurpose        string         `json:"inferred_purpose"`
	BehavioralInsight      string         `json:"behavioral_insight"`
	ActionableSuggestion   string         `json:"actionable_suggestion"`
}

type SerialOpenerTotals struct {
	TotalSerialOpeners     int `json:"total_serial_openers"`
	TotalVisits            int `json:"total_visits"`
	TotalEngagementSeconds int `json:"total_engagement_seconds"`
}

// SerialOpenerComparison diffs the current period against the immediately
// preceding window of equal length.
type SerialOpenerComparison struct {
	PreviousStart time.Time          `json:"previous_start"`
	PreviousEnd   time.Time          `json:"previous_end"`
	Current       SerialOpenerTotals `json:"current"`
	Previous      SerialOpenerTotals `json:"previous"`
	Delta         SerialOpenerTotals `json:"delta"`
}

type SerialOpenerReport struct {
	PeriodStart   time.Time               `json:"period_start"`
	PeriodEnd     time.Time               `json:"period_end"`
	PeriodLabel   string                  `json:"period_label"`
	DaysInPeriod  float64                 `json:"days_in_period"`
	SerialOpeners []SerialOpener          `json:"serial_openers"`
	Comparison    *SerialOpenerComparison `json:"comparison,omitempty"`
}
