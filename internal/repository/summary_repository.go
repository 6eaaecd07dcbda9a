package repository

import (
	"context"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/jmoiron/sqlx"
)

// SummaryRepository serves the plain aggregation endpoints: simple group-by
// queries with no adaptive logic.
type SummaryRepository interface {
	GetTopDomains(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.DomainStats, error)
	GetDailySummary(ctx context.Context, userID string, start, end time.Time) ([]entity.DailySummary, error)
	GetWeeklySummary(ctx context.Context, userID string, weeks int) ([]entity.WeeklySummary, error)
}

type summaryRepository struct {
	db *sqlx.DB
}

func NewSummaryRepository(db *sqlx.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) GetTopDomains(ctx context.Context, userID string, start, end time.Time, limit int) ([]entity.DomainStats, error) {
	var stats []entity.DomainStats
	query := `
		SELECT
			domain,
			COUNT(*) AS visit_count,
			COALESCE(SUM(active_duration_seconds), 0) / 60.0 AS active_minutes,
			MIN(visited_at) AS first_visit,
			MAX(visited_at) AS last_visit
		FROM visits
		WHERE user_id = $1 AND visited_at >= $2 AND visited_at < $3
		GROUP BY domain
		ORDER BY visit_count DESC
		LIMIT $4`

	err := r.db.SelectContext(ctx, &stats, query, userID, start, end, limit)
	return stats, err
}

func (r *summaryRepository) GetDailySummary(ctx context.Context, userID string, start, end time.Time) ([]entity.DailySummary, error) {
	var summaries []entity.DailySummary
	query := `
		SELECT
			TO_CHAR(DATE(visited_at), 'YYYY-MM-DD') AS date,
			COUNT(*) AS visit_count,
			COALESCE(SUM(duration_seconds), 0) / 60.0 AS total_minutes,
			COALESCE(SUM(active_duration_seconds), 0) / 60.0 AS active_minutes,
			COUNT(DISTINCT domain) AS unique_domains
		FROM visits
		WHERE user_id = $1 AND visited_at >= $2 AND visited_at < $3
		GROUP BY DATE(visited_at)
		ORDER BY date DESC`

	err := r.db.SelectContext(ctx, &summaries, query, userID, start, end)
	return summaries, err
}

func (r *summaryRepository) GetWeeklySummary(ctx context.Context, userID string, weeks int) ([]entity.WeeklySummary, error) {
	var summaries []entity.WeeklySummary
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC('week', visited_at), 'YYYY-MM-DD') AS week_start,
			COUNT(*) AS visit_count,
			COALESCE(SUM(duration_seconds), 0) / 60.0 AS total_minutes,
			COALESCE(SUM(active_duration_seconds), 0) / 60.0 AS active_minutes,
			COUNT(DISTINCT domain) AS unique_domains
		FROM visits
		WHERE user_id = $1 AND visited_at >= NOW() - ($2 * INTERVAL '1 week')
		GROUP BY DATE_TRUNC('week', visited_at)
		ORDER BY week_start DESC`

	err := r.db.SelectContext(ctx, &summaries, query, userID, weeks)
	return summaries, err
}
