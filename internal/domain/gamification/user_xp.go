package gamification

import (
	"time"

	"github.com/google/uuid"
)

// UserXP is the denormalized running total of a user's ledger.
type UserXP struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TotalXP   int64     `gorm:"column:total_xp;not null;default:0" json:"total_xp"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (UserXP) TableName() string { return "user_xp" }
