package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/thorbis-backend/internal/data/repos"
	types "github.com/yungbote/thorbis-backend/internal/domain"
	"github.com/yungbote/thorbis-backend/internal/observability"
	apperrors "github.com/yungbote/thorbis-backend/internal/pkg/errors"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/realtime"
)

type RecordProgressInput struct {
	LessonID           uuid.UUID
	UserID             uuid.UUID
	ProgressPercentage *float64
	// TimeSpent replaces the stored minutes; nil writes 0.
	TimeSpent       *int
	CurrentPosition datatypes.JSON
	CompletionData  datatypes.JSON
}

type RecordProgressResult struct {
	Progress       *types.LessonProgress
	NewlyCompleted bool
	// Course is set when the course rollup ran after a new completion.
	Course    *CourseProgress
	AwardedXP int
}

type ProgressService interface {
	GetLessonProgress(ctx context.Context, lessonID, userID uuid.UUID) (*types.LessonProgress, error)
	RecordLessonProgress(ctx context.Context, in RecordProgressInput) (*RecordProgressResult, error)
}

type ProgressServiceDeps struct {
	DB             *gorm.DB
	Log            *logger.Logger
	Lessons        repos.LessonRepo
	Courses        repos.CourseRepo
	Enrollments    repos.EnrollmentRepo
	Progress       repos.LessonProgressRepo
	XP             XPService
	CourseProgress CourseProgressService
	Notifier       ProgressNotifier
	Metrics        *observability.Metrics
}

type progressService struct {
	db             *gorm.DB
	log            *logger.Logger
	lessons        repos.LessonRepo
	courses        repos.CourseRepo
	enrollments    repos.EnrollmentRepo
	progress       repos.LessonProgressRepo
	xp             XPService
	courseProgress CourseProgressService
	notifier       ProgressNotifier
	metrics        *observability.Metrics
}

func NewProgressService(deps ProgressServiceDeps) ProgressService {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewProgressNotifier(deps.Log, nil)
	}
	return &progressService{
		db:             deps.DB,
		log:            deps.Log.With("service", "ProgressService"),
		lessons:        deps.Lessons,
		courses:        deps.Courses,
		enrollments:    deps.Enrollments,
		progress:       deps.Progress,
		xp:             deps.XP,
		courseProgress: deps.CourseProgress,
		notifier:       notifier,
		metrics:        deps.Metrics,
	}
}

// GetLessonProgress returns the stored row, or an unsaved zero row when the
// learner has not started the lesson.
func (s *progressService) GetLessonProgress(ctx context.Context, lessonID, userID uuid.UUID) (*types.LessonProgress, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Validation("userId is required")
	}
	if lessonID == uuid.Nil {
		return nil, apperrors.Validation("lessonId is required")
	}
	row, err := s.progress.GetByLessonAndUser(ctx, nil, lessonID, userID)
	if err != nil {
		return nil, apperrors.Storage("load lesson progress", err)
	}
	if row == nil {
		return &types.LessonProgress{LessonID: lessonID, UserID: userID}, nil
	}
	return row, nil
}

func (s *progressService) RecordLessonProgress(ctx context.Context, in RecordProgressInput) (*RecordProgressResult, error) {
	if in.UserID == uuid.Nil {
		return nil, apperrors.Validation("userId is required")
	}
	if in.LessonID == uuid.Nil {
		return nil, apperrors.Validation("lessonId is required")
	}
	if in.ProgressPercentage == nil {
		return nil, apperrors.Validation("progressPercentage is required")
	}

	ctx, span := tracer.Start(ctx, "ProgressService.RecordLessonProgress", trace.WithAttributes(
		attribute.String("lesson.id", in.LessonID.String()),
		attribute.String("user.id", in.UserID.String()),
	))
	defer span.End()

	lesson, err := s.lessons.GetByID(ctx, nil, in.LessonID)
	if err != nil {
		return nil, apperrors.Storage("load lesson", err)
	}
	if lesson == nil {
		return nil, apperrors.NotFound("lesson not found")
	}
	enrollment, err := s.enrollments.GetByCourseAndUser(ctx, nil, lesson.CourseID, in.UserID)
	if err != nil {
		return nil, apperrors.Storage("load enrollment", err)
	}
	if enrollment == nil {
		return nil, apperrors.Unauthorized("not enrolled in course")
	}

	pct := ClampPercentage(*in.ProgressPercentage)

	var (
		saved          *types.LessonProgress
		newlyCompleted bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prior, err := s.progress.GetByLessonAndUser(ctx, tx, lesson.ID, in.UserID)
		if err != nil {
			return apperrors.Storage("load lesson progress", err)
		}

		row := &types.LessonProgress{
			LessonID:           lesson.ID,
			UserID:             in.UserID,
			CourseID:           lesson.CourseID,
			ProgressPercentage: pct,
			CurrentPosition:    in.CurrentPosition,
			CompletionData:     in.CompletionData,
		}
		if in.TimeSpent != nil {
			row.TimeSpentMinutes = max(*in.TimeSpent, 0)
		}
		var priorCompletedAt *time.Time
		if prior != nil {
			priorCompletedAt = prior.CompletedAt
			if in.CurrentPosition == nil {
				row.CurrentPosition = prior.CurrentPosition
			}
			if in.CompletionData == nil {
				row.CompletionData = prior.CompletionData
			}
		}

		crossing := IsNewlyCompleted(pct, priorCompletedAt)

		saved, err = s.progress.Upsert(ctx, tx, row)
		if err != nil {
			return apperrors.Storage("upsert lesson progress", err)
		}
		if !crossing {
			return nil
		}
		now := time.Now().UTC()
		stamped, err := s.progress.MarkCompleted(ctx, tx, saved.ID, now)
		if err != nil {
			return apperrors.Storage("mark lesson completed", err)
		}
		if stamped {
			saved.CompletedAt = &now
			newlyCompleted = true
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &RecordProgressResult{Progress: saved, NewlyCompleted: newlyCompleted}
	if newlyCompleted {
		s.metrics.LessonCompleted()
		s.log.Info("lesson completed", "lesson_id", lesson.ID, "course_id", lesson.CourseID, "user_id", in.UserID)
		s.runCompletionEffects(context.WithoutCancel(ctx), lesson, in.UserID, result)
	}
	return result, nil
}

// runCompletionEffects awards XP and rolls the course up after the progress
// write has committed. Failures are logged and never reach the caller.
func (s *progressService) runCompletionEffects(ctx context.Context, lesson *types.Lesson, userID uuid.UUID, result *RecordProgressResult) {
	s.notifier.Notify(ctx, realtime.ProgressEvent{
		Type:     realtime.EventLessonCompleted,
		UserID:   userID,
		CourseID: lesson.CourseID,
		LessonID: lesson.ID,
		Progress: 100,
	})

	if xp, err := s.xp.AwardLessonCompletion(ctx, userID, lesson); err != nil {
		s.metrics.SideEffectFailed("lesson_xp")
		s.log.Error("lesson xp award failed", "lesson_id", lesson.ID, "user_id", userID, "error", err)
	} else if xp > 0 {
		result.AwardedXP += xp
		s.notifier.Notify(ctx, realtime.ProgressEvent{
			Type:     realtime.EventXPAwarded,
			UserID:   userID,
			CourseID: lesson.CourseID,
			LessonID: lesson.ID,
			XPAmount: xp,
		})
	}

	course, err := s.courseProgress.Recompute(ctx, lesson.CourseID, userID)
	if err != nil {
		s.metrics.SideEffectFailed("course_progress")
		s.log.Error("course progress recompute failed", "course_id", lesson.CourseID, "user_id", userID, "error", err)
		return
	}
	result.Course = course
	if !course.NewlyCompleted {
		return
	}

	s.metrics.CourseCompleted()
	s.notifier.Notify(ctx, realtime.ProgressEvent{
		Type:     realtime.EventCourseCompleted,
		UserID:   userID,
		CourseID: lesson.CourseID,
		Progress: course.Progress,
	})

	row, err := s.courses.GetByID(ctx, nil, lesson.CourseID)
	if err == nil && row == nil {
		err = apperrors.NotFound("course not found")
	}
	if err != nil {
		s.metrics.SideEffectFailed("course_xp")
		s.log.Error("load course for xp failed", "course_id", lesson.CourseID, "user_id", userID, "error", err)
		return
	}
	xp, err := s.xp.AwardCourseCompletion(ctx, userID, row)
	if err != nil {
		s.metrics.SideEffectFailed("course_xp")
		s.log.Error("course xp award failed", "course_id", lesson.CourseID, "user_id", userID, "error", err)
		return
	}
	if xp > 0 {
		result.AwardedXP += xp
		s.notifier.Notify(ctx, realtime.ProgressEvent{
			Type:     realtime.EventXPAwarded,
			UserID:   userID,
			CourseID: lesson.CourseID,
			XPAmount: xp,
		})
	}
}
