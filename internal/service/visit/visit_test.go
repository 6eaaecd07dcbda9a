package visit

import (
	"context"
	"testing"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	visits   []entity.VisitRecord
	closures []entity.TabClosureRecord
}

func (f *fakeRepo) Create(_ context.Context, visit *entity.VisitRecord) error {
	f.visits = append(f.visits, *visit)
	return nil
}

func (f *fakeRepo) BatchCreate(_ context.Context, visits []entity.VisitRecord) error {
	f.visits = append(f.visits, visits...)
	return nil
}

func (f *fakeRepo) GetByUserAndRange(context.Context, string, time.Time, time.Time) ([]entity.VisitRecord, error) {
	return nil, nil
}

func (f *fakeRepo) GetSince(context.Context, string, time.Time) ([]entity.VisitRecord, error) {
	return nil, nil
}

func (f *fakeRepo) CreateClosure(_ context.Context, closure *entity.TabClosureRecord) error {
	f.closures = append(f.closures, *closure)
	return nil
}

func (f *fakeRepo) GetClosureByURL(context.Context, string, string) (*entity.TabClosureRecord, error) {
	return nil, nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func validRequest() entity.CreateVisitRequest {
	return entity.CreateVisitRequest{
		UserID:    "u1",
		URL:       "https://example.com/page",
		Domain:    "example.com",
		VisitedAt: time.Now(),
	}
}

func TestCreateVisit(t *testing.T) {
	repo := &fakeRepo{}
	s := NewVisitService(repo, nil)

	visit, err := s.CreateVisit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "u1", visit.UserID)
	assert.Len(t, repo.visits, 1)
}

func TestCreateVisitValidation(t *testing.T) {
	s := NewVisitService(&fakeRepo{}, nil)

	tests := []struct {
		name   string
		mutate func(*entity.CreateVisitRequest)
	}{
		{"negative duration", func(r *entity.CreateVisitRequest) { r.DurationSeconds = intPtr(-1) }},
		{"negative active duration", func(r *entity.CreateVisitRequest) { r.ActiveDurationSeconds = intPtr(-5) }},
		{"active exceeds total", func(r *entity.CreateVisitRequest) {
			r.DurationSeconds = intPtr(10)
			r.ActiveDurationSeconds = intPtr(20)
		}},
		{"engagement above one", func(r *entity.CreateVisitRequest) { r.EngagementRate = floatPtr(1.5) }},
		{"engagement below zero", func(r *entity.CreateVisitRequest) { r.EngagementRate = floatPtr(-0.1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := s.CreateVisit(context.Background(), req)
			assert.Error(t, err)
		})
	}
}

func TestBatchCreateVisits(t *testing.T) {
	repo := &fakeRepo{}
	s := NewVisitService(repo, nil)

	req := entity.BatchCreateVisitRequest{
		Visits: []entity.CreateVisitRequest{validRequest(), validRequest()},
	}

	created, err := s.BatchCreateVisits(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Len(t, repo.visits, 2)
}

func TestBatchCreateVisitsLimits(t *testing.T) {
	s := NewVisitService(&fakeRepo{}, nil)

	_, err := s.BatchCreateVisits(context.Background(), entity.BatchCreateVisitRequest{})
	assert.Error(t, err)

	tooMany := make([]entity.CreateVisitRequest, 1001)
	for i := range tooMany {
		tooMany[i] = validRequest()
	}
	_, err = s.BatchCreateVisits(context.Background(), entity.BatchCreateVisitRequest{Visits: tooMany})
	assert.Error(t, err)
}

func TestBatchCreateVisitsRejectsWholeBatchOnBadEntry(t *testing.T) {
	repo := &fakeRepo{}
	s := NewVisitService(repo, nil)

	bad := validRequest()
	bad.DurationSeconds = intPtr(-1)
	req := entity.BatchCreateVisitRequest{
		Visits: []entity.CreateVisitRequest{validRequest(), bad},
	}

	_, err := s.BatchCreateVisits(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
	assert.Empty(t, repo.visits)
}

func TestCreateClosureValidation(t *testing.T) {
	repo := &fakeRepo{}
	s := NewVisitService(repo, nil)

	closure, err := s.CreateClosure(context.Background(), entity.CreateTabClosureRequest{
		UserID:            "u1",
		URL:               "https://example.com/page",
		ClosedAt:          time.Now(),
		TotalTimeSeconds:  100,
		ActiveTimeSeconds: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, closure.TotalTimeSeconds)
	assert.Len(t, repo.closures, 1)

	_, err = s.CreateClosure(context.Background(), entity.CreateTabClosureRequest{
		UserID: "u1", URL: "https://example.com", ClosedAt: time.Now(),
		TotalTimeSeconds: 10, ActiveTimeSeconds: 20,
	})
	assert.Error(t, err)

	depth := 150
	_, err = s.CreateClosure(context.Background(), entity.CreateTabClosureRequest{
		UserID: "u1", URL: "https://example.com", ClosedAt: time.Now(),
		TotalTimeSeconds: 10, ActiveTimeSeconds: 5, ScrollDepthPercent: &depth,
	})
	assert.Error(t, err)
}
