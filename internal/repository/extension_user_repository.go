package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
)

type ExtensionUserRepository interface {
	Create(ctx context.Context, user *entity.ExtensionUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ExtensionUser, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*entity.ExtensionUser, error)
	GetByUsername(ctx context.Context, username string) (*entity.ExtensionUser, error)
	RegenerateAPIKey(ctx context.Context, id uuid.UUID) (string, error)
	UpdateLastUsed(ctx context.Context, apiKey string) error
	GetStats(ctx context.Context) (*entity.ExtensionUserStats, error)
}

type extensionUserRepository struct {
	db *sqlx.DB
}

func NewExtensionUserRepository(db *sqlx.DB) ExtensionUserRepository {
	return &extensionUserRepository{db: db}
}

func (r *extensionUserRepository) Create(ctx context.Context, user *entity.ExtensionUser) error {
	user.ID = uuid.Must(uuid.NewV4())
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	user.IsActive = true

	apiKey, err := r.generateAPIKey()
	if err != nil {
		return fmt.Errorf("failed to generate API key: %w", err)
	}
	user.APIKey = apiKey

	query := `
		INSERT INTO extension_users (id, username, api_key, is_active, created_at, updated_at)
		VALUES (:id, :username, :api_key, :is_active, :created_at, :updated_at)`

	if _, err = r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to create extension user: %w", err)
	}

	return nil
}

func (r *extensionUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExtensionUser, error) {
	var user entity.ExtensionUser
	query := `SELECT * FROM extension_users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extension user by ID: %w", err)
	}

	return &user, nil
}

func (r *extensionUserRepository) GetByAPIKey(ctx context.Context, apiKey string) (*entity.ExtensionUser, error) {
	var user entity.ExtensionUser
	query := `SELECT * FROM extension_users WHERE api_key = $1 AND is_active = true`

	err := r.db.GetContext(ctx, &user, query, apiKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extension user by API key: %w", err)
	}

	return &user, nil
}

func (r *extensionUserRepository) GetByUsername(ctx context.Context, username string) (*entity.ExtensionUser, error) {
	var user entity.ExtensionUser
	query := `SELECT * FROM extension_users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extension user by username: %w", err)
	}

	return &user, nil
}

func (r *extensionUserRepository) RegenerateAPIKey(ctx context.Context, id uuid.UUID) (string, error) {
	apiKey, err := r.generateAPIKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	query := `UPDATE extension_users SET api_key = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, apiKey, time.Now(), id)
	if err != nil {
		return "", fmt.Errorf("failed to regenerate API key: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rowsAffected == 0 {
		return "", sql.ErrNoRows
	}

	return apiKey, nil
}

func (r *extensionUserRepository) UpdateLastUsed(ctx context.Context, apiKey string) error {
	query := `UPDATE extension_users SET last_used_at = $1 WHERE api_key = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), apiKey)
	return err
}

func (r *extensionUserRepository) GetStats(ctx context.Context) (*entity.ExtensionUserStats, error) {
	var stats entity.ExtensionUserStats

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE NOT is_active),
			COUNT(*) FILTER (WHERE is_active AND last_used_at >= CURRENT_DATE),
			COUNT(*) FILTER (WHERE is_active AND last_used_at >= CURRENT_DATE - INTERVAL '7 days')
		FROM extension_users`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.ActiveUsers,
		&stats.InactiveUsers,
		&stats.UsersUsedToday,
		&stats.UsersUsedThisWeek,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get extension user stats: %w", err)
	}

	return &stats, nil
}

func (r *extensionUserRepository) generateAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	apiKey := "hb_" + hex.EncodeToString(bytes)

	var count int
	query := `SELECT COUNT(*) FROM extension_users WHERE api_key = $1`
	if err := r.db.QueryRow(query, apiKey).Scan(&count); err != nil {
		return "", err
	}

	// Regenerate on the (unlikely) collision.
	if count > 0 {
		return r.generateAPIKey()
	}

	return apiKey, nil
}
