package realtime

import (
	"time"

	"github.com/google/uuid"
)

type ProgressEventType string

const (
	EventLessonCompleted ProgressEventType = "lesson.completed"
	EventCourseCompleted ProgressEventType = "course.completed"
	EventXPAwarded       ProgressEventType = "xp.awarded"
)

// ProgressEvent is broadcast after a first-crossing completion or an XP award.
type ProgressEvent struct {
	Type       ProgressEventType `json:"type"`
	UserID     uuid.UUID         `json:"user_id"`
	CourseID   uuid.UUID         `json:"course_id,omitempty"`
	LessonID   uuid.UUID         `json:"lesson_id,omitempty"`
	XPAmount   int               `json:"xp_amount,omitempty"`
	Progress   int               `json:"progress,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
