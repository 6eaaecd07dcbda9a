package summary

import (
	"context"
	"fmt"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/repository"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/insights"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/pkg/utils"
)

const (
	defaultTopDomainsLimit = 10
	maxTopDomainsLimit     = 50
	defaultWeeklyWeeks     = 4
	maxWeeklyWeeks         = 12
)

type SummaryService interface {
	GetTopDomains(ctx context.Context, userID, period, startDate, endDate string, limit int) (*entity.TopDomainsResponse, error)
	GetDailySummary(ctx context.Context, userID, period, startDate, endDate string) ([]entity.DailySummary, error)
	GetWeeklySummary(ctx context.Context, userID string, weeks int) ([]entity.WeeklySummary, error)
}

type summaryService struct {
	repo   repository.SummaryRepository
	ranges *insights.DateRangeCalculator
}

func NewSummaryService(repo repository.SummaryRepository) SummaryService {
	return &summaryService{repo: repo, ranges: insights.NewDateRangeCalculator()}
}

func (s *summaryService) GetTopDomains(ctx context.Context, userID, period, startDate, endDate string, limit int) (*entity.TopDomainsResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if limit <= 0 {
		limit = defaultTopDomainsLimit
	}
	if limit > maxTopDomainsLimit {
		limit = maxTopDomainsLimit
	}

	dateRange, err := s.ranges.Parse(period, startDate, endDate)
	if err != nil {
		return nil, err
	}

	domains, err := s.repo.GetTopDomains(ctx, userID, dateRange.Start, dateRange.End, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top domains: %w", err)
	}

	totalVisits := 0
	for _, d := range domains {
		totalVisits += d.VisitCount
	}
	for i := range domains {
		if totalVisits > 0 {
			domains[i].Percentage = utils.RoundToTwoDecimals(float64(domains[i].VisitCount) / float64(totalVisits) * 100)
		}
	}

	return &entity.TopDomainsResponse{
		UserID:       userID,
		Period:       utils.FormatPeriod(dateRange.Start, dateRange.End),
		TotalDomains: len(domains),
		TotalVisits:  totalVisits,
		Domains:      domains,
	}, nil
}

func (s *summaryService) GetDailySummary(ctx context.Context, userID, period, startDate, endDate string) ([]entity.DailySummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	dateRange, err := s.ranges.Parse(period, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summaries, err := s.repo.GetDailySummary(ctx, userID, dateRange.Start, dateRange.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily summary: %w", err)
	}

	return summaries, nil
}

func (s *summaryService) GetWeeklySummary(ctx context.Context, userID string, weeks int) ([]entity.WeeklySummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if weeks <= 0 {
		weeks = defaultWeeklyWeeks
	}
	if weeks > maxWeeklyWeeks {
		weeks = maxWeeklyWeeks
	}

	summaries, err := s.repo.GetWeeklySummary(ctx, userID, weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly summary: %w", err)
	}

	return summaries, nil
}
