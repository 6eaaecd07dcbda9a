package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

type ExtensionUser struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Username   string     `json:"username" db:"username"`
	APIKey     string     `json:"apiKey" db:"api_key"`
	IsActive   bool       `json:"isActive" db:"is_active"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
	LastUsedAt *time.Time `json:"lastUsedAt" db:"last_used_at"`
}

// ToPublic strips the API key for listing endpoints.
func (u *ExtensionUser) ToPublic() ExtensionUserPublic {
	return ExtensionUserPublic{
		ID:         u.ID,
		Username:   u.Username,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		LastUsedAt: u.LastUsedAt,
	}
}

type ExtensionUserPublic struct {
	ID         uuid.UUID  `json:"id"`
	Username   string     `json:"username"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
}

type CreateExtensionUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
}

type RegenerateAPIKeyResponse struct {
	ID     uuid.UUID `json:"id"`
	APIKey string    `json:"apiKey"`
}

type ExtensionUserStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	ActiveUsers       int64 `json:"activeUsers"`
	InactiveUsers     int64 `json:"inactiveUsers"`
	UsersUsedToday    int64 `json:"usersUsedToday"`
	UsersUsedThisWeek int64 `json:"usersUsedThisWeek"`
}
