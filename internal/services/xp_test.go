package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/thorbis-backend/internal/data/repos/testutil"
	types "github.com/yungbote/thorbis-backend/internal/domain"
)

func TestAwardLessonCompletionIsOncePerLesson(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	lesson := testutil.SeedLesson(t, ctx, env.db, course.ID, 30, true)
	userID := uuid.New()

	xp, err := env.xp.AwardLessonCompletion(ctx, userID, lesson)
	require.NoError(t, err)
	assert.Equal(t, 60, xp)

	xp, err = env.xp.AwardLessonCompletion(ctx, userID, lesson)
	require.NoError(t, err)
	assert.Equal(t, 0, xp)

	rows := env.ledgerRows(t, userID)
	require.Len(t, rows, 1)
	assert.Equal(t, types.XPSourceLessonCompletion, rows[0].SourceType)
	assert.Equal(t, lesson.ID, rows[0].SourceID)
	assert.Equal(t, "Completed lesson: lesson", rows[0].Description)
	assert.Equal(t, int64(60), env.totalXP(t, userID))
}

func TestAwardLessonCompletionSkipsZeroXP(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	lesson := testutil.SeedLesson(t, ctx, env.db, course.ID, 0, true)
	userID := uuid.New()

	xp, err := env.xp.AwardLessonCompletion(ctx, userID, lesson)
	require.NoError(t, err)
	assert.Equal(t, 0, xp)
	assert.Empty(t, env.ledgerRows(t, userID))
	assert.Equal(t, int64(0), env.totalXP(t, userID))
}

func TestAwardCourseCompletionWithNullHours(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	userID := uuid.New()

	xp, err := env.xp.AwardCourseCompletion(ctx, userID, course)
	require.NoError(t, err)
	assert.Equal(t, 50, xp)

	rows := env.ledgerRows(t, userID)
	require.Len(t, rows, 1)
	assert.Equal(t, types.XPSourceCourseCompletion, rows[0].SourceType)
	assert.Equal(t, 50, rows[0].XPAmount)
}

func TestGetUserXP(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, testutil.PtrFloat(2))
	l1 := testutil.SeedLesson(t, ctx, env.db, course.ID, 10, true)
	l2 := testutil.SeedLesson(t, ctx, env.db, course.ID, 5, true)
	userID := uuid.New()

	_, err := env.xp.AwardLessonCompletion(ctx, userID, l1)
	require.NoError(t, err)
	_, err = env.xp.AwardLessonCompletion(ctx, userID, l2)
	require.NoError(t, err)
	_, err = env.xp.AwardCourseCompletion(ctx, userID, course)
	require.NoError(t, err)

	summary, err := env.xp.GetUserXP(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(20+10+100), summary.TotalXP)
	assert.Len(t, summary.Transactions, 2)

	_, err = env.xp.GetUserXP(ctx, uuid.Nil, 10)
	assert.Error(t, err)
}

func TestReconcileRepairsCounter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	course := testutil.SeedCourse(t, ctx, env.db, nil)
	lesson := testutil.SeedLesson(t, ctx, env.db, course.ID, 15, true)
	alice, bob := uuid.New(), uuid.New()

	for _, u := range []uuid.UUID{alice, bob} {
		_, err := env.xp.AwardLessonCompletion(ctx, u, lesson)
		require.NoError(t, err)
	}
	// Drift both counters away from the ledger.
	require.NoError(t, env.counters.Increment(ctx, nil, alice, 999))
	require.NoError(t, env.counters.Increment(ctx, nil, bob, -7))

	total, err := env.xp.ReconcileUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)

	require.NoError(t, env.counters.Increment(ctx, nil, alice, 5))
	n, err := env.xp.ReconcileAll(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(30), env.totalXP(t, alice))
	assert.Equal(t, int64(30), env.totalXP(t, bob))
}
