package insights

import (
	"fmt"
	"math"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
)

type BehaviorTier string

const (
	TierCompulsive BehaviorTier = "compulsive"
	TierFrequent   BehaviorTier = "frequent"
	TierRegular    BehaviorTier = "regular"
)

// Baselines are defined for a 7-day reference window and scaled linearly to
// the requested window, so a 1-day and a 30-day request apply comparable
// intensity of scrutiny.
const (
	baselineWindowDays = 7.0

	baselineCompulsiveVisits = 50
	baselineFrequentVisits   = 20
	baselineRegularVisits    = 10

	baselineSerialOpenerVisits = 3
	serialOpenerVisitsFloor    = 2

	// Cumulative active engagement above this means the resource actually
	// got read at some point, so it is not a serial-opener. Not scaled:
	// the visits-per-day rate already normalizes for window length.
	maxSerialOpenerEngagementSecs = 300

	// Period-invariant rate (~3 visits/week) a resource must reach,
	// computed as visit_count / days_in_period.
	minVisitsPerDayThreshold = 0.43
)

// AdaptiveThresholds holds the limits for one requested window. Recomputed
// per request, never persisted.
type AdaptiveThresholds struct {
	DaysInPeriod float64
}

func NewAdaptiveThresholds(daysInPeriod float64) *AdaptiveThresholds {
	return &AdaptiveThresholds{DaysInPeriod: daysInPeriod}
}

func (t *AdaptiveThresholds) scale(baseline int) int {
	return int(math.Round(float64(baseline) * t.DaysInPeriod / baselineWindowDays))
}

// MinVisitsFor returns the scaled visit-count threshold for a behavior tier.
// An unknown tier is a programmer error.
func (t *AdaptiveThresholds) MinVisitsFor(tier BehaviorTier) (int, error) {
	switch tier {
	case TierCompulsive:
		return t.scale(baselineCompulsiveVisits), nil
	case TierFrequent:
		return t.scale(baselineFrequentVisits), nil
	case TierRegular:
		return t.scale(baselineRegularVisits), nil
	default:
		return 0, fmt.Errorf("%w: unknown behavior tier %q", ErrInvalidArgument, tier)
	}
}

// MinSerialOpenerVisits scales the serial-opener visit baseline, with a
// floor of 2 regardless of how short the window is.
func (t *AdaptiveThresholds) MinSerialOpenerVisits() int {
	scaled := t.scale(baselineSerialOpenerVisits)
	if scaled < serialOpenerVisitsFloor {
		return serialOpenerVisitsFloor
	}
	return scaled
}

func (t *AdaptiveThresholds) MaxSerialOpenerEngagementSeconds() int {
	return maxSerialOpenerEngagementSecs
}

// QualifiesAsSerialOpener reports whether the visit rate clears the
// period-invariant 0.43 visits/day bar. False for zero or negative windows.
func (t *AdaptiveThresholds) QualifiesAsSerialOpener(visitCount int) bool {
	if t.DaysInPeriod <= 0 {
		return false
	}
	return float64(visitCount)/t.DaysInPeriod >= minVisitsPerDayThreshold
}

// ClassifyByVisitCount buckets a raw count against the scaled tier
// thresholds. Boundaries are inclusive on the lower bound.
func (t *AdaptiveThresholds) ClassifyByVisitCount(visitCount int) entity.BehaviorType {
	switch {
	case visitCount >= t.scale(baselineCompulsiveVisits):
		return entity.BehaviorCompulsiveChecking
	case visitCount >= t.scale(baselineFrequentVisits):
		return entity.BehaviorFrequentMonitoring
	case visitCount >= t.scale(baselineRegularVisits):
		return entity.BehaviorRegularReference
	default:
		return entity.BehaviorPeriodicRevisit
	}
}

// ClassifyByFrequency buckets the average gap between visits. Zero or
// missing cadence degrades to the most conservative class.
func ClassifyByFrequency(avgHoursBetween float64) entity.BehaviorType {
	if avgHoursBetween <= 0 {
		return entity.BehaviorPeriodicRevisit
	}
	switch {
	case avgHoursBetween < 0.5:
		return entity.BehaviorCompulsiveChecking
	case avgHoursBetween < 2:
		return entity.BehaviorFrequentMonitoring
	case avgHoursBetween < 6:
		return entity.BehaviorRegularReference
	default:
		return entity.BehaviorPeriodicRevisit
	}
}

// ClassifyEngagement buckets average active seconds per visit. Zero or
// missing engagement degrades to quick_glance.
func ClassifyEngagement(avgSeconds float64) entity.EngagementType {
	if avgSeconds <= 0 {
		return entity.EngagementQuickGlance
	}
	switch {
	case avgSeconds < 5:
		return entity.EngagementQuickGlance
	case avgSeconds < 15:
		return entity.EngagementBriefCheck
	case avgSeconds < 60:
		return entity.EngagementScan
	case avgSeconds < 120:
		return entity.EngagementShallowWork
	default:
		return entity.EngagementDeep
	}
}
