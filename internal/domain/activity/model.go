package activity

import (
	"fmt"
	"time"
)

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectCreated ActivityType = "project_created"
	TypeProjectDeleted ActivityType = "project_deleted"
	TypeItemToggled    ActivityType = "item_toggled"
	TypeItemCommented  ActivityType = "item_commented"
)

// ActivityEntry represents a successful checklist mutation in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"project_id"`
	CategoryID   string       `json:"category_id,omitempty"`
	ItemID       string       `json:"item_id,omitempty"`
	Actor        string       `json:"actor"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ParseActivityType validates an activity type string.
func ParseActivityType(s string) (ActivityType, error) {
	switch t := ActivityType(s); t {
	case TypeProjectCreated, TypeProjectDeleted, TypeItemToggled, TypeItemCommented:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, s)
	}
}
