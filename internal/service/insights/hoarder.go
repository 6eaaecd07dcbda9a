package insights

import (
	"fmt"
	"math"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
)

const (
	hoarderHighScore   = 80
	hoarderMediumScore = 60

	ageSettledPoints = 30 // 1-3 days
	ageStalePoints   = 45 // >= 3 days

	inactivityStrictPoints  = 25
	inactivityNeutralPoints = 15
	inactivityLenientPoints = 5

	singleVisitBonus = 20

	engagementRateFloor = 0.1
	engagementMaxPoints = 15
)

// HoarderScorer turns tab lifecycle metadata plus domain context into a
// 0-100+ score with a factor-by-factor breakdown.
type HoarderScorer struct{}

func NewHoarderScorer() *HoarderScorer {
	return &HoarderScorer{}
}

func (s *HoarderScorer) Calculate(meta *entity.TabMetadata, domainCtx entity.DomainContext) entity.HoarderScoreResult {
	// Exclusions short-circuit before any scoring.
	if meta.IsPinned {
		return excludedResult("pinned tab, kept open on purpose")
	}
	if domainCtx.DomainType == entity.DomainTypeProductivityTool && domainCtx.ShouldApplyLenientRules {
		return excludedResult("productivity tool in active use")
	}

	breakdown := make(map[string]entity.ScoreFactor)
	total := 0

	if pts, reason := s.ageFactor(meta.TabAgeDays); pts > 0 {
		breakdown["tab_age"] = entity.ScoreFactor{Points: pts, Reason: reason}
		total += pts
	}

	if pts, reason := s.inactivityFactor(meta.DaysSinceLastActivity, domainCtx); pts > 0 {
		breakdown["inactivity"] = entity.ScoreFactor{Points: pts, Reason: reason}
		total += pts
	}

	// The single-visit bonus applies only under strict rules; inactivity
	// already carries its own weight, so this never double-counts.
	if domainCtx.ShouldApplyStrictRules && meta.VisitCount == 1 {
		breakdown["visit_pattern"] = entity.ScoreFactor{
			Points: singleVisitBonus,
			Reason: "single visit under strict domain rules",
		}
		total += singleVisitBonus
	}

	if pts, reason := s.engagementFactor(meta.AverageEngagementRate); pts > 0 {
		breakdown["engagement"] = entity.ScoreFactor{Points: pts, Reason: reason}
		total += pts
	}

	result := entity.HoarderScoreResult{
		TotalScore:     total,
		ScoreBreakdown: breakdown,
		Reason:         s.buildReason(meta, breakdown),
	}
	switch {
	case total >= hoarderHighScore:
		result.IsHoarder = true
		result.ConfidenceLevel = entity.ConfidenceHigh
	case total >= hoarderMediumScore:
		result.IsHoarder = true
		result.ConfidenceLevel = entity.ConfidenceMedium
	default:
		result.ConfidenceLevel = entity.ConfidenceNotHoarder
	}

	return result
}

// ageFactor is monotonic in tab age; the widening gaps reflect diminishing
// marginal signal from very old tabs.
func (s *HoarderScorer) ageFactor(ageDays float64) (int, string) {
	switch {
	case ageDays < 1:
		return 0, ""
	case ageDays < 3:
		return ageSettledPoints, fmt.Sprintf("open for %.1f days", ageDays)
	default:
		return ageStalePoints, fmt.Sprintf("open for %.1f days", ageDays)
	}
}

func (s *HoarderScorer) inactivityFactor(daysSince float64, domainCtx entity.DomainContext) (int, string) {
	if daysSince < 1 {
		return 0, ""
	}

	pts := inactivityNeutralPoints
	switch {
	case domainCtx.ShouldApplyStrictRules:
		pts = inactivityStrictPoints
	case domainCtx.ShouldApplyLenientRules:
		pts = inactivityLenientPoints
	}

	return pts, fmt.Sprintf("no activity for %.1f days", daysSince)
}

func (s *HoarderScorer) engagementFactor(avgRate float64) (int, string) {
	if avgRate >= engagementRateFloor {
		return 0, ""
	}

	// Proportional to how far below the floor the engagement sits.
	pts := int(math.Round(engagementMaxPoints * (engagementRateFloor - avgRate) / engagementRateFloor))
	return pts, fmt.Sprintf("average engagement rate %.2f is below the %.2f floor", avgRate, engagementRateFloor)
}

func (s *HoarderScorer) buildReason(meta *entity.TabMetadata, breakdown map[string]entity.ScoreFactor) string {
	dominant := ""
	top := 0
	for _, factor := range breakdown {
		if factor.Points > top {
			top = factor.Points
			dominant = factor.Reason
		}
	}

	if dominant == "" {
		return fmt.Sprintf("no hoarding signals; open for %.1f days", meta.TabAgeDays)
	}

	return fmt.Sprintf("%s; last activity %.1f days ago across %d visit(s)",
		dominant, meta.DaysSinceLastActivity, meta.VisitCount)
}

func excludedResult(reason string) entity.HoarderScoreResult {
	return entity.HoarderScoreResult{
		TotalScore:      0,
		IsHoarder:       false,
		ConfidenceLevel: entity.ConfidenceExcluded,
		ScoreBreakdown:  map[string]entity.ScoreFactor{},
		Reason:          reason,
	}
}
