package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// VisitRepository is the storage collaborator for the insights core: one
// bounded read per request, visits in range plus zero-or-one closure per URL.
type VisitRepository interface {
	Create(ctx context.Context, visit *entity.VisitRecord) error
	BatchCreate(ctx context.Context, visits []entity.VisitRecord) error
	GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]entity.VisitRecord, error)
	GetSince(ctx context.Context, userID string, since time.Time) ([]entity.VisitRecord, error)
	CreateClosure(ctx context.Context, closure *entity.TabClosureRecord) error
	GetClosureByURL(ctx context.Context, userID, url string) (*entity.TabClosureRecord, error)
}

type visitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *entity.VisitRecord) error {
	visit.ID = uuid2.UUID(uuid.New())
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = time.Now()

	query := `
		INSERT INTO visits (id, user_id, url, domain, title, visited_at, duration_seconds, active_duration_seconds, engagement_rate, metadata, created_at, updated_at)
		VALUES (:id, :user_id, :url, :domain, :title, :visited_at, :duration_seconds, :active_duration_seconds, :engagement_rate, :metadata, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, visit)
	return err
}

func (r *visitRepository) BatchCreate(ctx context.Context, visits []entity.VisitRecord) error {
	if len(visits) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO visits (id, user_id, url, domain, title, visited_at, duration_seconds, active_duration_seconds, engagement_rate, metadata, created_at, updated_at)
		VALUES (:id, :user_id, :url, :domain, :title, :visited_at, :duration_seconds, :active_duration_seconds, :engagement_rate, :metadata, :created_at, :updated_at)`

	for i := range visits {
		visits[i].ID = uuid2.UUID(uuid.New())
		visits[i].CreatedAt = time.Now()
		visits[i].UpdatedAt = time.Now()
	}

	if _, err = tx.NamedExecContext(ctx, query, visits); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *visitRepository) GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]entity.VisitRecord, error) {
	var visits []entity.VisitRecord
	query := `
		SELECT * FROM visits
		WHERE user_id = $1 AND visited_at >= $2 AND visited_at < $3
		ORDER BY visited_at ASC`

	err := r.db.SelectContext(ctx, &visits, query, userID, start, end)
	return visits, err
}

func (r *visitRepository) GetSince(ctx context.Context, userID string, since time.Time) ([]entity.VisitRecord, error) {
	var visits []entity.VisitRecord
	query := `
		SELECT * FROM visits
		WHERE user_id = $1 AND visited_at >= $2
		ORDER BY visited_at DESC`

	err := r.db.SelectContext(ctx, &visits, query, userID, since)
	return visits, err
}

func (r *visitRepository) CreateClosure(ctx context.Context, closure *entity.TabClosureRecord) error {
	closure.ID = uuid2.UUID(uuid.New())
	closure.CreatedAt = time.Now()

	query := `
		INSERT INTO tab_closures (id, user_id, url, closed_at, total_time_seconds, active_time_seconds, scroll_depth_percent, created_at)
		VALUES (:id, :user_id, :url, :closed_at, :total_time_seconds, :active_time_seconds, :scroll_depth_percent, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, closure)
	return err
}

// GetClosureByURL returns the latest closure for the resource, or nil when
// the tab's lifecycle end is unknown.
func (r *visitRepository) GetClosureByURL(ctx context.Context, userID, url string) (*entity.TabClosureRecord, error) {
	var closure entity.TabClosureRecord
	query := `
		SELECT * FROM tab_closures
		WHERE user_id = $1 AND url = $2
		ORDER BY closed_at DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, &closure, query, userID, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &closure, nil
}
