package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/yungbote/thorbis-backend/internal/data/repos"
	apperrors "github.com/yungbote/thorbis-backend/internal/pkg/errors"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

// CourseProgress is an enrollment's rollup after a recompute.
type CourseProgress struct {
	CourseID         uuid.UUID  `json:"course_id"`
	UserID           uuid.UUID  `json:"user_id"`
	Progress         int        `json:"progress"`
	CompletedLessons int64      `json:"completed_lessons"`
	TotalLessons     int64      `json:"total_lessons"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	NewlyCompleted   bool       `json:"-"`
}

type CourseProgressService interface {
	// Recompute derives enrollment.progress from completed published lessons
	// and stamps enrollment.completed_at on the first crossing of 100.
	Recompute(ctx context.Context, courseID, userID uuid.UUID) (*CourseProgress, error)
	GetCourseProgress(ctx context.Context, courseID, userID uuid.UUID) (*CourseProgress, error)
}

type courseProgressService struct {
	db          *gorm.DB
	log         *logger.Logger
	lessons     repos.LessonRepo
	enrollments repos.EnrollmentRepo
	progress    repos.LessonProgressRepo
}

func NewCourseProgressService(
	db *gorm.DB,
	baseLog *logger.Logger,
	lessons repos.LessonRepo,
	enrollments repos.EnrollmentRepo,
	progress repos.LessonProgressRepo,
) CourseProgressService {
	return &courseProgressService{
		db:          db,
		log:         baseLog.With("service", "CourseProgressService"),
		lessons:     lessons,
		enrollments: enrollments,
		progress:    progress,
	}
}

func (s *courseProgressService) Recompute(ctx context.Context, courseID, userID uuid.UUID) (*CourseProgress, error) {
	ctx, span := tracer.Start(ctx, "CourseProgressService.Recompute", trace.WithAttributes(
		attribute.String("course.id", courseID.String()),
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	var out *CourseProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollment, err := s.enrollments.GetByCourseAndUser(ctx, tx, courseID, userID)
		if err != nil {
			return apperrors.Storage("load enrollment", err)
		}
		if enrollment == nil {
			return apperrors.Unauthorized("not enrolled in course")
		}

		total, err := s.lessons.CountPublishedByCourseID(ctx, tx, courseID)
		if err != nil {
			return apperrors.Storage("count published lessons", err)
		}
		completed, err := s.progress.CountCompletedPublished(ctx, tx, courseID, userID)
		if err != nil {
			return apperrors.Storage("count completed lessons", err)
		}
		pct := CoursePercentage(completed, total)

		out = &CourseProgress{
			CourseID:         courseID,
			UserID:           userID,
			Progress:         pct,
			CompletedLessons: completed,
			TotalLessons:     total,
			CompletedAt:      enrollment.CompletedAt,
		}

		if err := s.enrollments.UpdateProgress(ctx, tx, enrollment.ID, pct); err != nil {
			return apperrors.Storage("update enrollment progress", err)
		}
		if !IsNewlyCompleted(float64(pct), enrollment.CompletedAt) {
			return nil
		}
		now := time.Now().UTC()
		stamped, err := s.enrollments.MarkCompleted(ctx, tx, enrollment.ID, now)
		if err != nil {
			return apperrors.Storage("mark enrollment completed", err)
		}
		if stamped {
			out.CompletedAt = &now
			out.NewlyCompleted = true
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if out.NewlyCompleted {
		s.log.Info("course completed", "course_id", courseID, "user_id", userID)
	}
	return out, nil
}

func (s *courseProgressService) GetCourseProgress(ctx context.Context, courseID, userID uuid.UUID) (*CourseProgress, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Validation("userId is required")
	}
	enrollment, err := s.enrollments.GetByCourseAndUser(ctx, nil, courseID, userID)
	if err != nil {
		return nil, apperrors.Storage("load enrollment", err)
	}
	if enrollment == nil {
		return nil, apperrors.Unauthorized("not enrolled in course")
	}
	total, err := s.lessons.CountPublishedByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, apperrors.Storage("count published lessons", err)
	}
	completed, err := s.progress.CountCompletedPublished(ctx, nil, courseID, userID)
	if err != nil {
		return nil, apperrors.Storage("count completed lessons", err)
	}
	return &CourseProgress{
		CourseID:         courseID,
		UserID:           userID,
		Progress:         enrollment.Progress,
		CompletedLessons: completed,
		TotalLessons:     total,
		CompletedAt:      enrollment.CompletedAt,
	}, nil
}
