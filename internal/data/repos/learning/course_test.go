package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/thorbis-backend/internal/data/repos/testutil"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewCourseRepo(db, testutil.Logger(t))

	c := testutil.SeedCourse(t, ctx, db, testutil.PtrFloat(2.5))

	got, err := repo.GetByID(ctx, nil, c.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v row=%v", err, got)
	}
	if got.EstimatedHours == nil || *got.EstimatedHours != 2.5 {
		t.Fatalf("EstimatedHours = %v", got.EstimatedHours)
	}

	missing, err := repo.GetByID(ctx, nil, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID(missing): err=%v row=%v", err, missing)
	}
}

func TestLessonRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewLessonRepo(db, testutil.Logger(t))

	c := testutil.SeedCourse(t, ctx, db, nil)
	other := testutil.SeedCourse(t, ctx, db, nil)
	l1 := testutil.SeedLesson(t, ctx, db, c.ID, 30, true)
	testutil.SeedLesson(t, ctx, db, c.ID, 10, true)
	testutil.SeedLesson(t, ctx, db, c.ID, 10, false)
	testutil.SeedLesson(t, ctx, db, other.ID, 10, true)

	got, err := repo.GetByID(ctx, nil, l1.ID)
	if err != nil || got == nil || got.DurationMinutes != 30 || got.CourseID != c.ID {
		t.Fatalf("GetByID: err=%v row=%+v", err, got)
	}

	n, err := repo.CountPublishedByCourseID(ctx, nil, c.ID)
	if err != nil || n != 2 {
		t.Fatalf("CountPublishedByCourseID: err=%v n=%d", err, n)
	}
}
