package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/thorbis-backend/internal/data/repos"
	types "github.com/yungbote/thorbis-backend/internal/domain"
	"github.com/yungbote/thorbis-backend/internal/observability"
	apperrors "github.com/yungbote/thorbis-backend/internal/pkg/errors"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

type UserXPSummary struct {
	UserID       uuid.UUID              `json:"user_id"`
	TotalXP      int64                  `json:"total_xp"`
	Transactions []*types.XPTransaction `json:"transactions"`
}

type XPService interface {
	// AwardLessonCompletion credits round(duration * rate) XP once per
	// (user, lesson) and returns the amount credited by this call.
	AwardLessonCompletion(ctx context.Context, userID uuid.UUID, lesson *types.Lesson) (int, error)
	// AwardCourseCompletion credits the course bonus once per (user, course).
	AwardCourseCompletion(ctx context.Context, userID uuid.UUID, course *types.Course) (int, error)
	GetUserXP(ctx context.Context, userID uuid.UUID, limit int) (*UserXPSummary, error)
	ReconcileUser(ctx context.Context, userID uuid.UUID) (int64, error)
	ReconcileAll(ctx context.Context, limit, concurrency int) (int, error)
}

type xpService struct {
	db       *gorm.DB
	log      *logger.Logger
	ledger   repos.XPTransactionRepo
	counters repos.UserXPRepo
	rules    GamificationRules
	metrics  *observability.Metrics
}

func NewXPService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ledger repos.XPTransactionRepo,
	counters repos.UserXPRepo,
	rules GamificationRules,
	metrics *observability.Metrics,
) XPService {
	return &xpService{
		db:       db,
		log:      baseLog.With("service", "XPService"),
		ledger:   ledger,
		counters: counters,
		rules:    rules,
		metrics:  metrics,
	}
}

func (s *xpService) AwardLessonCompletion(ctx context.Context, userID uuid.UUID, lesson *types.Lesson) (int, error) {
	if lesson == nil {
		return 0, apperrors.NotFound("lesson not found")
	}
	xp := s.rules.LessonXP(lesson)
	if xp <= 0 {
		s.log.Debug("lesson awards no xp", "lesson_id", lesson.ID, "duration_minutes", lesson.DurationMinutes)
		return 0, nil
	}
	return s.award(ctx, &types.XPTransaction{
		UserID:      userID,
		SourceType:  types.XPSourceLessonCompletion,
		SourceID:    lesson.ID,
		XPAmount:    xp,
		Description: fmt.Sprintf("Completed lesson: %s", lesson.Title),
	})
}

func (s *xpService) AwardCourseCompletion(ctx context.Context, userID uuid.UUID, course *types.Course) (int, error) {
	if course == nil {
		return 0, apperrors.NotFound("course not found")
	}
	xp := s.rules.CourseXP(course)
	if xp <= 0 {
		return 0, nil
	}
	return s.award(ctx, &types.XPTransaction{
		UserID:      userID,
		SourceType:  types.XPSourceCourseCompletion,
		SourceID:    course.ID,
		XPAmount:    xp,
		Description: fmt.Sprintf("Completed course: %s", course.Title),
	})
}

// award appends the ledger row and bumps the counter in one transaction. The
// counter moves only when the ledger insert actually wrote a row.
func (s *xpService) award(ctx context.Context, row *types.XPTransaction) (int, error) {
	ctx, span := tracer.Start(ctx, "XPService.award", trace.WithAttributes(
		attribute.String("xp.source_type", string(row.SourceType)),
		attribute.String("xp.source_id", row.SourceID.String()),
		attribute.Int("xp.amount", row.XPAmount),
	))
	defer span.End()

	credited := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wrote, err := s.ledger.CreateIfAbsent(ctx, tx, row)
		if err != nil {
			return apperrors.Storage("append xp transaction", err)
		}
		if !wrote {
			return nil
		}
		if err := s.counters.Increment(ctx, tx, row.UserID, int64(row.XPAmount)); err != nil {
			return apperrors.Storage("increment user xp", err)
		}
		credited = true
		return nil
	})
	if err != nil {
		span.RecordError(err)
		s.metrics.XPAwardFailed(string(row.SourceType))
		return 0, err
	}
	if !credited {
		s.log.Debug("xp already awarded", "user_id", row.UserID, "source_type", row.SourceType, "source_id", row.SourceID)
		return 0, nil
	}
	s.metrics.XPAwarded(string(row.SourceType), row.XPAmount)
	s.log.Info("xp awarded", "user_id", row.UserID, "source_type", row.SourceType, "source_id", row.SourceID, "xp", row.XPAmount)
	return row.XPAmount, nil
}

func (s *xpService) GetUserXP(ctx context.Context, userID uuid.UUID, limit int) (*UserXPSummary, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Validation("userId is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	counter, err := s.counters.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apperrors.Storage("load user xp", err)
	}
	txns, err := s.ledger.ListByUserID(ctx, nil, userID, limit)
	if err != nil {
		return nil, apperrors.Storage("list xp transactions", err)
	}
	return &UserXPSummary{UserID: userID, TotalXP: counter.TotalXP, Transactions: txns}, nil
}

func (s *xpService) ReconcileUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, apperrors.Validation("userId is required")
	}
	total, err := s.counters.ResetFromLedger(ctx, nil, userID)
	if err != nil {
		return 0, apperrors.Storage("reconcile user xp", err)
	}
	return total, nil
}

func (s *xpService) ReconcileAll(ctx context.Context, limit, concurrency int) (int, error) {
	start := time.Now()
	ids, err := s.ledger.ListUserIDs(ctx, nil, limit)
	if err != nil {
		return 0, apperrors.Storage("list xp users", err)
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := s.ReconcileUser(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	s.log.Info("xp reconcile finished", "users", len(ids), "duration_ms", time.Since(start).Milliseconds())
	return len(ids), nil
}
