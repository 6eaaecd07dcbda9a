package entity

import "time"

type ConfidenceLevel string

const (
	ConfidenceExcluded   ConfidenceLevel = "excluded"
	ConfidenceNotHoarder ConfidenceLevel = "not_hoarder"
	ConfidenceMedium     ConfidenceLevel = "medium"
	ConfidenceHigh       ConfidenceLevel = "high"
)

type ScoreFactor struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

type HoarderScoreResult struct {
	TotalScore      int                    `json:"total_score"`
	IsHoarder       bool                   `json:"is_hoarder"`
	ConfidenceLevel ConfidenceLevel        `json:"confidence_level"`
	ScoreBreakdown  map[string]ScoreFactor `json:"score_breakdown"`
	Reason          string                 `json:"reason"`
}

// HoarderTab is the API-facing shape for one detected hoarder tab.
type HoarderTab struct {
	URL                   string                 `json:"url"`
	Title                 string                 `json:"title"`
	Domain                string                 `json:"domain"`
	Score                 int                    `json:"score"`
	ConfidenceLevel       ConfidenceLevel        `json:"confidence_level"`
	Reason                string                 `json:"reason"`
	TabAgeDays            float64                `json:"tab_age_days"`
	DaysSinceLastActivity float64                `json:"days_since_last_activity"`
	TabStatus             TabStatus              `json:"tab_status"`
	DomainType            DomainType             `json:"domain_type"`
	ScoreBreakdown        map[string]ScoreFactor `json:"score_breakdown"`
}

type HoarderReport struct {
	PeriodStart time.Time    `json:"period_start"`
	PeriodEnd   time.Time    `json:"period_end"`
	PeriodLabel string       `json:"period_label"`
	TabsChecked int          `json:"tabs_checked"`
	Hoarders    []HoarderTab `json:"hoarders"`
}
