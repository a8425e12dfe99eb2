package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/thorbis-backend/internal/data/repos"
	"github.com/yungbote/thorbis-backend/internal/data/repos/testutil"
	types "github.com/yungbote/thorbis-backend/internal/domain"
	"github.com/yungbote/thorbis-backend/internal/observability"
	"github.com/yungbote/thorbis-backend/internal/realtime"
)

type testEnv struct {
	db          *gorm.DB
	lessons     repos.LessonRepo
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
	progress    repos.LessonProgressRepo
	ledger      repos.XPTransactionRepo
	counters    repos.UserXPRepo
	xp          XPService
	course      CourseProgressService
	recorder    ProgressService
	notifier    *recordingNotifier
	metrics     *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithXP(t, nil)
}

// newTestEnvWithXP lets a test swap the XP engine, e.g. for fault injection.
func newTestEnvWithXP(t *testing.T, wrap func(XPService) XPService) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:          db,
		lessons:     repos.NewLessonRepo(db, log),
		courses:     repos.NewCourseRepo(db, log),
		enrollments: repos.NewEnrollmentRepo(db, log),
		progress:    repos.NewLessonProgressRepo(db, log),
		ledger:      repos.NewXPTransactionRepo(db, log),
		counters:    repos.NewUserXPRepo(db, log),
		notifier:    &recordingNotifier{},
		metrics:     observability.NewMetrics(),
	}
	env.xp = NewXPService(db, log, env.ledger, env.counters, DefaultGamificationRules(), env.metrics)
	if wrap != nil {
		env.xp = wrap(env.xp)
	}
	env.course = NewCourseProgressService(db, log, env.lessons, env.enrollments, env.progress)
	env.recorder = NewProgressService(ProgressServiceDeps{
		DB:             db,
		Log:            log,
		Lessons:        env.lessons,
		Courses:        env.courses,
		Enrollments:    env.enrollments,
		Progress:       env.progress,
		XP:             env.xp,
		CourseProgress: env.course,
		Notifier:       env.notifier,
		Metrics:        env.metrics,
	})
	return env
}

func (e *testEnv) ledgerRows(t *testing.T, userID uuid.UUID) []*types.XPTransaction {
	t.Helper()
	rows, err := e.ledger.ListByUserID(context.Background(), nil, userID, 100)
	if err != nil {
		t.Fatalf("list ledger: %v", err)
	}
	return rows
}

func (e *testEnv) totalXP(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	row, err := e.counters.GetByUserID(context.Background(), nil, userID)
	if err != nil {
		t.Fatalf("load user xp: %v", err)
	}
	return row.TotalXP
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []realtime.ProgressEvent
}

func (n *recordingNotifier) Notify(_ context.Context, evt realtime.ProgressEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
}

func (n *recordingNotifier) count(typ realtime.ProgressEventType) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.Type == typ {
			c++
		}
	}
	return c
}

var errXPDown = errors.New("xp store unavailable")

type failingXP struct {
	XPService
}

func (failingXP) AwardLessonCompletion(context.Context, uuid.UUID, *types.Lesson) (int, error) {
	return 0, errXPDown
}

func (failingXP) AwardCourseCompletion(context.Context, uuid.UUID, *types.Course) (int, error) {
	return 0, errXPDown
}
