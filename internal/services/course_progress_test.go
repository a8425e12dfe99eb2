package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/thorbis-backend/internal/data/repos/testutil"
	apperrors "github.com/yungbote/thorbis-backend/internal/pkg/errors"
)

func TestRecomputeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	l1 := testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	userID := uuid.New()
	testutil.SeedEnrollment(t, ctx, env.db, course.ID, userID)
	testutil.SeedCompletedProgress(t, ctx, env.db, l1, userID)

	for i := 0; i < 3; i++ {
		cp, err := env.course.Recompute(ctx, course.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, 33, cp.Progress)
		assert.Equal(t, int64(1), cp.CompletedLessons)
		assert.Equal(t, int64(3), cp.TotalLessons)
		assert.False(t, cp.NewlyCompleted)
		assert.Nil(t, cp.CompletedAt)
	}
}

func TestRecomputeIgnoresUnpublishedAndOtherUsers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	published := testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	draft := testutil.SeedLesson(t, ctx, env.db, course.ID, 10, false)
	testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	userID, other := uuid.New(), uuid.New()
	testutil.SeedEnrollment(t, ctx, env.db, course.ID, userID)
	testutil.SeedCompletedProgress(t, ctx, env.db, draft, userID)
	testutil.SeedCompletedProgress(t, ctx, env.db, published, other)

	cp, err := env.course.Recompute(ctx, course.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, cp.Progress)
	assert.Equal(t, int64(2), cp.TotalLessons)
}

func TestRecomputeEmptyCourse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	userID := uuid.New()
	testutil.SeedEnrollment(t, ctx, env.db, course.ID, userID)

	cp, err := env.course.Recompute(ctx, course.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, cp.Progress)
	assert.False(t, cp.NewlyCompleted)
}

func TestRecomputeStampsCompletionOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	lesson := testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	userID := uuid.New()
	testutil.SeedEnrollment(t, ctx, env.db, course.ID, userID)
	testutil.SeedCompletedProgress(t, ctx, env.db, lesson, userID)

	first, err := env.course.Recompute(ctx, course.ID, userID)
	require.NoError(t, err)
	assert.True(t, first.NewlyCompleted)
	require.NotNil(t, first.CompletedAt)

	second, err := env.course.Recompute(ctx, course.ID, userID)
	require.NoError(t, err)
	assert.False(t, second.NewlyCompleted)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, first.CompletedAt.Equal(*second.CompletedAt))
}

func TestRecomputeRequiresEnrollment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)

	_, err := env.course.Recompute(ctx, course.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGetCourseProgress(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	l1 := testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	userID := uuid.New()
	testutil.SeedEnrollment(t, ctx, env.db, course.ID, userID)
	testutil.SeedCompletedProgress(t, ctx, env.db, l1, userID)

	_, err := env.course.Recompute(ctx, course.ID, userID)
	require.NoError(t, err)

	cp, err := env.course.GetCourseProgress(ctx, course.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, cp.Progress)
	assert.Equal(t, int64(1), cp.CompletedLessons)
	assert.Equal(t, int64(2), cp.TotalLessons)

	_, err = env.course.GetCourseProgress(ctx, course.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = env.course.GetCourseProgress(ctx, course.ID, uuid.Nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
