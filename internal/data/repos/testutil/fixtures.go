package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/thorbis-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, estimatedHours *float64) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:             uuid.New(),
		Title:          "course",
		EstimatedHours: estimatedHours,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, durationMinutes int, published bool) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:              uuid.New(),
		CourseID:        courseID,
		Title:           "lesson",
		DurationMinutes: durationMinutes,
		IsPublished:     published,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, userID uuid.UUID) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		ID:       uuid.New(),
		CourseID: courseID,
		UserID:   userID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedCompletedProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, lesson *types.Lesson, userID uuid.UUID) *types.LessonProgress {
	tb.Helper()
	now := time.Now().UTC()
	p := &types.LessonProgress{
		ID:                 uuid.New(),
		LessonID:           lesson.ID,
		UserID:             userID,
		CourseID:           lesson.CourseID,
		ProgressPercentage: 100,
		CompletedAt:        &now,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed lesson progress: %v", err)
	}
	return p
}

func PtrFloat(v float64) *float64 { return &v }

func PtrInt(v int) *int { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
