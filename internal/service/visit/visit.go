package visit

import (
	"context"
	"fmt"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/repository"
	redisService "github.com/Spranc-Labs/heyho-sync-be-sub000/internal/service/redis"
)

const maxBatchSize = 1000

type VisitService interface {
	CreateVisit(ctx context.Context, req entity.CreateVisitRequest) (*entity.VisitRecord, error)
	BatchCreateVisits(ctx context.Context, req entity.BatchCreateVisitRequest) (int, error)
	CreateClosure(ctx context.Context, req entity.CreateTabClosureRequest) (*entity.TabClosureRecord, error)
}

type visitService struct {
	repo  repository.VisitRepository
	cache redisService.ServiceInterface
}

func NewVisitService(repo repository.VisitRepository, cache redisService.ServiceInterface) VisitService {
	return &visitService{repo: repo, cache: cache}
}

func (s *visitService) CreateVisit(ctx context.Context, req entity.CreateVisitRequest) (*entity.VisitRecord, error) {
	if err := validateVisit(req); err != nil {
		return nil, err
	}

	visit := toRecord(req)
	if err := s.repo.Create(ctx, &visit); err != nil {
		return nil, fmt.Errorf("failed to create visit: %w", err)
	}

	s.invalidate(ctx, req.UserID)

	return &visit, nil
}

func (s *visitService) BatchCreateVisits(ctx context.Context, req entity.BatchCreateVisitRequest) (int, error) {
	if len(req.Visits) == 0 {
		return 0, fmt.Errorf("no visits provided")
	}
	if len(req.Visits) > maxBatchSize {
		return 0, fmt.Errorf("too many visits, maximum is %d", maxBatchSize)
	}

	visits := make([]entity.VisitRecord, 0, len(req.Visits))
	for i, v := range req.Visits {
		if err := validateVisit(v); err != nil {
			return 0, fmt.Errorf("validation error at index %d: %w", i, err)
		}
		visits = append(visits, toRecord(v))
	}

	if err := s.repo.BatchCreate(ctx, visits); err != nil {
		return 0, fmt.Errorf("failed to batch create visits: %w", err)
	}

	for _, v := range req.Visits {
		s.invalidate(ctx, v.UserID)
	}

	return len(visits), nil
}

func (s *visitService) CreateClosure(ctx context.Context, req entity.CreateTabClosureRequest) (*entity.TabClosureRecord, error) {
	if req.TotalTimeSeconds < 0 || req.ActiveTimeSeconds < 0 {
		return nil, fmt.Errorf("closure times must be non-negative")
	}
	if req.ActiveTimeSeconds > req.TotalTimeSeconds {
		return nil, fmt.Errorf("active time cannot exceed total time")
	}
	if req.ScrollDepthPercent != nil && (*req.ScrollDepthPercent < 0 || *req.ScrollDepthPercent > 100) {
		return nil, fmt.Errorf("scroll depth must be between 0 and 100")
	}

	closure := &entity.TabClosureRecord{
		UserID:             req.UserID,
		URL:                req.URL,
		ClosedAt:           req.ClosedAt,
		TotalTimeSeconds:   req.TotalTimeSeconds,
		ActiveTimeSeconds:  req.ActiveTimeSeconds,
		ScrollDepthPercent: req.ScrollDepthPercent,
	}

	if err := s.repo.CreateClosure(ctx, closure); err != nil {
		return nil, fmt.Errorf("failed to create closure: %w", err)
	}

	s.invalidate(ctx, req.UserID)

	return closure, nil
}

func validateVisit(req entity.CreateVisitRequest) error {
	if req.DurationSeconds != nil && *req.DurationSeconds < 0 {
		return fmt.Errorf("duration must be non-negative")
	}
	if req.ActiveDurationSeconds != nil && *req.ActiveDurationSeconds < 0 {
		return fmt.Errorf("active duration must be non-negative")
	}
	if req.DurationSeconds != nil && req.ActiveDurationSeconds != nil &&
		*req.ActiveDurationSeconds > *req.DurationSeconds {
		return fmt.Errorf("active duration cannot exceed total duration")
	}
	if req.EngagementRate != nil && (*req.EngagementRate < 0 || *req.EngagementRate > 1) {
		return fmt.Errorf("engagement rate must be between 0 and 1")
	}
	return nil
}

func toRecord(req entity.CreateVisitRequest) entity.VisitRecord {
	return entity.VisitRecord{
		UserID:                req.UserID,
		URL:                   req.URL,
		Domain:                req.Domain,
		Title:                 req.Title,
		VisitedAt:             req.VisitedAt,
		DurationSeconds:       req.DurationSeconds,
		ActiveDurationSeconds: req.ActiveDurationSeconds,
		EngagementRate:        req.EngagementRate,
		Metadata:              req.Metadata,
	}
}

// invalidate drops cached insight reports so new data is visible on the next
// read. Cache errors are not the extension's problem.
func (s *visitService) invalidate(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}
