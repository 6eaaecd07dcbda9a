package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
)

// Metadata is an open key/value map attached to a visit by the extension
// (stored as JSONB). Known keys: "pinned" (bool).
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Metadata", value)
	}

	return json.Unmarshal(data, m)
}

// Pinned reports whether the extension marked the tab as pinned.
func (m Metadata) Pinned() bool {
	v, ok := m["pinned"].(bool)
	return ok && v
}

type VisitRecord struct {
	ID                    uuid.UUID `json:"id" db:"id"`
	UserID                string    `json:"userId" db:"user_id" binding:"required"`
	URL                   string    `json:"url" db:"url" binding:"required"`
	Domain                string    `json:"domain" db:"domain" binding:"required"`
	Title                 string    `json:"title" db:"title"`
	VisitedAt             time.Time `json:"visitedAt" db:"visited_at" binding:"required"`
	DurationSeconds       *int      `json:"durationSeconds" db:"duration_seconds"`
	ActiveDurationSeconds *int      `json:"activeDurationSeconds" db:"active_duration_seconds"`
	EngagementRate        *float64  `json:"engagementRate" db:"engagement_rate"`
	Metadata              Metadata  `json:"metadata,omitempty" db:"metadata"`
	CreatedAt             time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateVisitRequest struct {
	UserID                string    `json:"userId" binding:"required"`
	URL                   string    `json:"url" binding:"required"`
	Domain                string    `json:"domain" binding:"required"`
	Title                 string    `json:"title"`
	VisitedAt             time.Time `json:"visitedAt" binding:"required"`
	DurationSeconds       *int      `json:"durationSeconds"`
	ActiveDurationSeconds *int      `json:"activeDurationSeconds"`
	EngagementRate        *float64  `json:"engagementRate"`
	Metadata              Metadata  `json:"metadata,omitempty"`
}

type BatchCreateVisitRequest struct {
	Visits []CreateVisitRequest `json:"visits" binding:"required,dive"`
}

// TabClosureRecord marks the actual lifecycle end of a tab. At most one per
// resource; its absence means the tab's open/closed state is unknown.
type TabClosureRecord struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	UserID             string    `json:"userId" db:"user_id"`
	URL                string    `json:"url" db:"url"`
	ClosedAt           time.Time `json:"closedAt" db:"closed_at"`
	TotalTimeSeconds   int       `json:"totalTimeSeconds" db:"total_time_seconds"`
	ActiveTimeSeconds  int       `json:"activeTimeSeconds" db:"active_time_seconds"`
	ScrollDepthPercent *int      `json:"scrollDepthPercent" db:"scroll_depth_percent"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

type CreateTabClosureRequest struct {
	UserID             string    `json:"userId" binding:"required"`
	URL                string    `json:"url" binding:"required"`
	ClosedAt           time.Time `json:"closedAt" binding:"required"`
	TotalTimeSeconds   int       `json:"totalTimeSeconds"`
	ActiveTimeSeconds  int       `json:"activeTimeSeconds"`
	ScrollDepthPercent *int      `json:"scrollDepthPercent"`
}
