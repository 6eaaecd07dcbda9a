package extension_user

import (
	"context"
	"fmt"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/repository"
	"github.com/gofrs/uuid"
)

type ExtensionUserService interface {
	CreateUser(ctx context.Context, req entity.CreateExtensionUserRequest) (*entity.ExtensionUser, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.ExtensionUser, error)
	ValidateAPIKey(ctx context.Context, apiKey string) (*entity.ExtensionUser, error)
	RegenerateAPIKey(ctx context.Context, id uuid.UUID) (*entity.RegenerateAPIKeyResponse, error)
	GetStats(ctx context.Context) (*entity.ExtensionUserStats, error)
}

type extensionUserService struct {
	repo repository.ExtensionUserRepository
}

func NewExtensionUserService(repo repository.ExtensionUserRepository) ExtensionUserService {
	return &extensionUserService{repo: repo}
}

func (s *extensionUserService) CreateUser(ctx context.Context, req entity.CreateExtensionUserRequest) (*entity.ExtensionUser, error) {
	existingUser, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if existingUser != nil {
		return nil, fmt.Errorf("username already exists")
	}

	user := &entity.ExtensionUser{Username: req.Username}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create extension user: %w", err)
	}

	return user, nil
}

func (s *extensionUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.ExtensionUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("extension user not found")
	}

	return user, nil
}

func (s *extensionUserService) ValidateAPIKey(ctx context.Context, apiKey string) (*entity.ExtensionUser, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	user, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to validate API key: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("invalid or inactive API key")
	}

	// Best-effort usage tracking; a failed touch never blocks the request.
	_ = s.repo.UpdateLastUsed(ctx, apiKey)

	return user, nil
}

func (s *extensionUserService) RegenerateAPIKey(ctx context.Context, id uuid.UUID) (*entity.RegenerateAPIKeyResponse, error) {
	apiKey, err := s.repo.RegenerateAPIKey(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate API key: %w", err)
	}

	return &entity.RegenerateAPIKeyResponse{ID: id, APIKey: apiKey}, nil
}

func (s *extensionUserService) GetStats(ctx context.Context) (*entity.ExtensionUserStats, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get extension user stats: %w", err)
	}

	return stats, nil
}
