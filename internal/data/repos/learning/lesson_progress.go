package learning

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/thorbis-backend/internal/domain"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonProgressRepo interface {
	GetByLessonAndUser(ctx context.Context, tx *gorm.DB, lessonID, userID uuid.UUID) (*types.LessonProgress, error)
	// Upsert inserts or updates the row keyed by (lesson_id, user_id). The
	// update path never writes completed_at.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.LessonProgress) (*types.LessonProgress, error)
	// MarkCompleted stamps completed_at only if it is still null and reports
	// whether this call did the stamping.
	MarkCompleted(ctx context.Context, tx *gorm.DB, progressID uuid.UUID, at time.Time) (bool, error)
	CountCompletedPublished(ctx context.Context, tx *gorm.DB, courseID, userID uuid.UUID) (int64, error)
}

type lessonProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	repoLog := baseLog.With("repo", "LessonProgressRepo")
	return &lessonProgressRepo{db: db, log: repoLog}
}

// GetByLessonAndUser returns nil, nil when no progress has been recorded.
func (r *lessonProgressRepo) GetByLessonAndUser(ctx context.Context, tx *gorm.DB, lessonID, userID uuid.UUID) (*types.LessonProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LessonProgress
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ? AND user_id = ?", lessonID, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *lessonProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.LessonProgress) (*types.LessonProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}
	row.UpdatedAt = time.Now().UTC()

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "lesson_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"course_id",
				"progress_percentage",
				"time_spent_minutes",
				"current_position",
				"completion_data",
				"updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	// The conflict path keeps the existing id, so reload by the natural key.
	return r.GetByLessonAndUser(ctx, transaction, row.LessonID, row.UserID)
}

func (r *lessonProgressRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, progressID uuid.UUID, at time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.LessonProgress{}).
		Where("id = ? AND completed_at IS NULL", progressID).
		Updates(map[string]interface{}{
			"completed_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *lessonProgressRepo) CountCompletedPublished(ctx context.Context, tx *gorm.DB, courseID, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(ctx).
		Model(&types.LessonProgress{}).
		Joins("JOIN lesson ON lesson.id = lesson_progress.lesson_id AND lesson.deleted_at IS NULL").
		Where("lesson_progress.course_id = ? AND lesson_progress.user_id = ?", courseID, userID).
		Where("lesson_progress.completed_at IS NOT NULL").
		Where("lesson.is_published = ?", true).
		Distinct("lesson_progress.lesson_id").
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
