package gamification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type XPSourceType string

const (
	XPSourceLessonCompletion XPSourceType = "lesson_completion"
	XPSourceCourseCompletion XPSourceType = "course_completion"
)

// XPTransaction is an append-only ledger entry. At most one row exists per
// (user, source type, source id).
type XPTransaction struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_xp_transaction_source,priority:1" json:"user_id"`
	SourceType  XPSourceType `gorm:"column:source_type;not null;uniqueIndex:idx_xp_transaction_source,priority:2" json:"source_type"`
	SourceID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_xp_transaction_source,priority:3" json:"source_id"`
	XPAmount    int          `gorm:"column:xp_amount;not null" json:"xp_amount"`
	Description string       `gorm:"column:description" json:"description"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (XPTransaction) TableName() string { return "xp_transaction" }

func (t *XPTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
