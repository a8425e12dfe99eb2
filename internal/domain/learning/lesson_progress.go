package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProgressState string

const (
	ProgressNotStarted ProgressState = "not_started"
	ProgressInProgress ProgressState = "in_progress"
	ProgressCompleted  ProgressState = "completed"
)

// LessonProgress is one learner's position in one lesson. CompletedAt is
// stamped the first time the percentage reaches 100 and never changes after.
type LessonProgress struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_lesson_user,priority:1" json:"lesson_id"`
	Lesson   *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_lesson_user,priority:2;index:idx_lesson_progress_course_user,priority:2" json:"user_id"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index:idx_lesson_progress_course_user,priority:1" json:"course_id"`

	ProgressPercentage float64        `gorm:"column:progress_percentage;not null;default:0" json:"progress_percentage"`
	TimeSpentMinutes   int            `gorm:"column:time_spent_minutes;not null;default:0" json:"time_spent_minutes"`
	CurrentPosition    datatypes.JSON `gorm:"column:current_position;type:jsonb" json:"current_position,omitempty"`
	CompletionData     datatypes.JSON `gorm:"column:completion_data;type:jsonb" json:"completion_data,omitempty"`
	CompletedAt        *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }

func (p *LessonProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// State derives the lifecycle state. A nil or unsaved row has not been started.
func (p *LessonProgress) State() ProgressState {
	switch {
	case p == nil, p.ID == uuid.Nil:
		return ProgressNotStarted
	case p.CompletedAt != nil:
		return ProgressCompleted
	default:
		return ProgressInProgress
	}
}
