package insights

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/pkg/utils"
)

// Query parameters that vary between openings of the same resource (view
// state, session identifiers, click tracking). Two URLs differing only in
// these are the same resource.
var volatileQueryParams = map[string]bool{
	"v":         true,
	"view":      true,
	"tab":       true,
	"sid":       true,
	"session":   true,
	"sessionid": true,
	"ref":       true,
	"fbclid":    true,
	"gclid":     true,
}

// NormalizeURL strips volatile query parameters and the fragment. Unparsable
// URLs pass through unchanged rather than crashing the run.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	for key := range q {
		lower := strings.ToLower(key)
		if volatileQueryParams[lower] || strings.HasPrefix(lower, "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return u.String()
}

type SerialOpenerDetector struct{}

func NewSerialOpenerDetector() *SerialOpenerDetector {
	return &SerialOpenerDetector{}
}

// Detect groups visits by normalized URL and returns the groups that are
// re-opened often (adaptive visit rate) but never genuinely read (cumulative
// engagement under the cap), ranked by visit count.
func (d *SerialOpenerDetector) Detect(visits []entity.VisitRecord, daysInRange float64) []entity.SerialOpener {
	thresholds := NewAdaptiveThresholds(daysInRange)

	groups := make(map[string][]entity.VisitRecord)
	for _, v := range visits {
		norm := NormalizeURL(v.URL)
		groups[norm] = append(groups[norm], v)
	}

	var openers []entity.SerialOpener
	for normURL, group := range groups {
		opener, ok := d.evaluateGroup(normURL, group, thresholds, daysInRange)
		if ok {
			openers = append(openers, opener)
		}
	}

	sort.Slice(openers, func(i, j int) bool {
		if openers[i].VisitCount != openers[j].VisitCount {
			return openers[i].VisitCount > openers[j].VisitCount
		}
		return openers[i].NormalizedURL < openers[j].NormalizedURL
	})

	return openers
}

func (d *SerialOpenerDetector) evaluateGroup(normURL string, group []entity.VisitRecord, thresholds *AdaptiveThresholds, daysInRange float64) (entity.SerialOpener, bool) {
	count := len(group)
	if count < thresholds.MinSerialOpenerVisits() {
		return entity.SerialOpener{}, false
	}
	if !thresholds.QualifiesAsSerialOpener(count) {
		return entity.SerialOpener{}, false
	}

	first := group[0]
	last := group[0]
	totalEngagement := 0
	for _, v := range group {
		if v.VisitedAt.Before(first.VisitedAt) {
			first = v
		}
		if v.VisitedAt.After(last.VisitedAt) {
			last = v
		}
		if v.ActiveDurationSeconds != nil {
			totalEngagement += *v.ActiveDurationSeconds
		}
	}

	if totalEngagement > thresholds.MaxSerialOpenerEngagementSeconds() {
		return entity.SerialOpener{}, false
	}

	spanHours := last.VisitedAt.Sub(first.VisitedAt).Hours()
	avgHoursBetween := 0.0
	if count > 1 {
		avgHoursBetween = spanHours / float64(count-1)
	}

	behavior := ClassifyByFrequency(avgHoursBetween)
	engagement := ClassifyEngagement(float64(totalEngagement) / float64(count))

	return entity.SerialOpener{
		NormalizedURL:          normURL,
		Domain:                 last.Domain,
		Title:                  last.Title,
		VisitCount:             count,
		TimeSpanHours:          utils.RoundToTwoDecimals(spanHours),
		AvgHoursBetweenVisits:  utils.RoundToTwoDecimals(avgHoursBetween),
		VisitsPerDay:           utils.RoundToTwoDecimals(float64(count) / daysInRange),
		TotalEngagementSeconds: totalEngagement,
		BehaviorType:           behavior,
		EngagementType:         engagement,
		InferredPurpose:        inferPurpose(behavior),
		BehavioralInsight:      buildInsight(count, spanHours, totalEngagement),
		ActionableSuggestion:   suggestAction(engagement),
	}, true
}

func inferPurpose(behavior entity.BehaviorType) string {
	switch behavior {
	case entity.BehaviorCompulsiveChecking:
		return "Checking for updates or new activity"
	case entity.BehaviorFrequentMonitoring:
		return "Monitoring something that changes during the day"
	case entity.BehaviorRegularReference:
		return "Returning to a recurring reference"
	default:
		return "Coming back to something left unfinished"
	}
}

func buildInsight(count int, spanHours float64, engagementSecs int) string {
	return fmt.Sprintf("Opened %d times over %.1f hours but engaged for only %d seconds in total",
		count, spanHours, engagementSecs)
}

func suggestAction(engagement entity.EngagementType) string {
	switch engagement {
	case entity.EngagementQuickGlance, entity.EngagementBriefCheck:
		return "Pin this tab or turn on notifications instead of re-opening it"
	case entity.EngagementScan:
		return "Set aside one focused block to actually read it"
	default:
		return "Bookmark it and schedule a single longer session"
	}
}
