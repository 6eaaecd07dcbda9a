package insights

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/repository"
	redisService "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/redis"
)

const (
	reportCacheTTL = 5 * time.Minute

	defaultRecentActivityWindow = 24 * time.Hour
)

// InsightsService is the boundary of the behavioral-pattern-detection core:
// it performs one bounded read per request and runs the pure detection
// pipeline over the in-memory snapshot.
type InsightsService interface {
	GetHoarderReport(ctx context.Context, userID, period, startDate, endDate string) (*entity.HoarderReport, error)
	GetSerialOpenerReport(ctx context.Context, userID, period, startDate, endDate string, includeComparison bool) (*entity.SerialOpenerReport, error)
	GetRecentActivity(ctx context.Context, userID string, since *time.Time, limit int) ([]entity.Session, error)
}

type insightsService struct {
	repo  repository.VisitRepository
	cache redisService.ServiceInterface

	ranges     *DateRangeCalculator
	tabAge     *TabAgeCalculator
	classifier *DomainContextClassifier
	scorer     *HoarderScorer
	detector   *SerialOpenerDetector
	clusterer  *SessionClusterer

	now func() time.Time
}

func NewInsightsService(repo repository.VisitRepository, cache redisService.ServiceInterface) InsightsService {
	return &insightsService{
		repo:       repo,
		cache:      cache,
		ranges:     NewDateRangeCalculator(),
		tabAge:     NewTabAgeCalculator(),
		classifier: NewDomainContextClassifier(),
		scorer:     NewHoarderScorer(),
		detector:   NewSerialOpenerDetector(),
		clusterer:  NewSessionClusterer(),
		now:        time.Now,
	}
}

func (s *insightsService) GetHoarderReport(ctx context.Context, userID, period, startDate, endDate string) (*entity.HoarderReport, error) {
	dateRange, err := s.ranges.Parse(period, startDate, endDate)
	if err != nil {
		return nil, err
	}

	cacheKey := periodCacheKey(dateRange)
	if s.cache != nil {
		var cached entity.HoarderReport
		if err := s.cache.GetReport(ctx, "hoarders", userID, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	visits, err := s.repo.GetByUserAndRange(ctx, userID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch visits: %w", err)
	}

	groups := make(map[string][]entity.VisitRecord)
	for _, v := range visits {
		groups[v.URL] = append(groups[v.URL], v)
	}

	report := &entity.HoarderReport{
		PeriodStart: dateRange.Start,
		PeriodEnd:   dateRange.End,
		PeriodLabel: dateRange.PeriodLabel,
		TabsChecked: len(groups),
		Hoarders:    []entity.HoarderTab{},
	}

	for url, group := range groups {
		closure, err := s.repo.GetClosureByURL(ctx, userID, url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch closure: %w", err)
		}

		meta := s.tabAge.Calculate(group, closure)
		if meta == nil {
			continue
		}

		domainCtx := s.classifier.Analyze(meta.Domain, url, meta)
		result := s.scorer.Calculate(meta, domainCtx)
		if !result.IsHoarder {
			continue
		}

		report.Hoarders = append(report.Hoarders, entity.HoarderTab{
			URL:                   url,
			Title:                 meta.Title,
			Domain:                meta.Domain,
			Score:                 result.TotalScore,
			ConfidenceLevel:       result.ConfidenceLevel,
			Reason:                result.Reason,
			TabAgeDays:            meta.TabAgeDays,
			DaysSinceLastActivity: meta.DaysSinceLastActivity,
			TabStatus:             meta.TabStatus,
			DomainType:            domainCtx.DomainType,
			ScoreBreakdown:        result.ScoreBreakdown,
		})
	}

	sort.Slice(report.Hoarders, func(i, j int) bool {
		if report.Hoarders[i].Score != report.Hoarders[j].Score {
			return report.Hoarders[i].Score > report.Hoarders[j].Score
		}
		return report.Hoarders[i].URL < report.Hoarders[j].URL
	})

	if s.cache != nil {
		_ = s.cache.CacheReport(ctx, "hoarders", userID, cacheKey, report, reportCacheTTL)
	}

	return report, nil
}

func (s *insightsService) GetSerialOpenerReport(ctx context.Context, userID, period, startDate, endDate string, includeComparison bool) (*entity.SerialOpenerReport, error) {
	dateRange, err := s.ranges.Parse(period, startDate, endDate)
	if err != nil {
		return nil, err
	}
	days := s.ranges.DaysInRange(dateRange)

	visits, err := s.repo.GetByUserAndRange(ctx, userID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch visits: %w", err)
	}

	openers := s.detector.Detect(visits, days)
	report := &entity.SerialOpenerReport{
		PeriodStart:   dateRange.Start,
		PeriodEnd:     dateRange.End,
		PeriodLabel:   dateRange.PeriodLabel,
		DaysInPeriod:  days,
		SerialOpeners: openers,
	}

	if includeComparison {
		previous := s.ranges.PreviousPeriod(dateRange)
		prevVisits, err := s.repo.GetByUserAndRange(ctx, userID, previous.Start, previous.End)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch previous period visits: %w", err)
		}

		// The prior window has the same length, so the same thresholds apply.
		prevOpeners := s.detector.Detect(prevVisits, days)
		current := totalsFor(openers)
		prev := totalsFor(prevOpeners)

		report.Comparison = &entity.SerialOpenerComparison{
			PreviousStart: previous.Start,
			PreviousEnd:   previous.End,
			Current:       current,
			Previous:      prev,
			Delta: entity.SerialOpenerTotals{
				TotalSerialOpeners:     current.TotalSerialOpeners - prev.TotalSerialOpeners,
				TotalVisits:            current.TotalVisits - prev.TotalVisits,
				TotalEngagementSeconds: current.TotalEngagementSeconds - prev.TotalEngagementSeconds,
			},
		}
	}

	return report, nil
}

func (s *insightsService) GetRecentActivity(ctx context.Context, userID string, since *time.Time, limit int) ([]entity.Session, error) {
	cutoff := s.now().Add(-defaultRecentActivityWindow)
	if since != nil {
		cutoff = *since
	}

	visits, err := s.repo.GetSince(ctx, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch visits: %w", err)
	}

	return s.clusterer.Cluster(visits, limit), nil
}

func totalsFor(openers []entity.SerialOpener) entity.SerialOpenerTotals {
	totals := entity.SerialOpenerTotals{TotalSerialOpeners: len(openers)}
	for _, o := range openers {
		totals.TotalVisits += o.VisitCount
		totals.TotalEngagementSeconds += o.TotalEngagementSeconds
	}
	return totals
}

func periodCacheKey(r entity.DateRange) string {
	if r.IsCustom {
		return fmt.Sprintf("custom:%s:%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return r.PeriodLabel
}

// IsInvalidDateRange lets the handler layer map range errors to 400s without
// string matching.
func IsInvalidDateRange(err error) bool {
	return errors.Is(err, ErrInvalidDateRange)
}
