package gamification

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/thorbis-backend/internal/domain"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type XPTransactionRepo interface {
	// CreateIfAbsent appends the entry unless one already exists for the same
	// (user, source type, source id). It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, row *types.XPTransaction) (bool, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.XPTransaction, error)
	CountBySource(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sourceType types.XPSourceType, sourceID uuid.UUID) (int64, error)
	SumByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	ListUserIDs(ctx context.Context, tx *gorm.DB, limit int) ([]uuid.UUID, error)
}

type xpTransactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewXPTransactionRepo(db *gorm.DB, baseLog *logger.Logger) XPTransactionRepo {
	repoLog := baseLog.With("repo", "XPTransactionRepo")
	return &xpTransactionRepo{db: db, log: repoLog}
}

func (r *xpTransactionRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, row *types.XPTransaction) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return false, nil
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "source_type"}, {Name: "source_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *xpTransactionRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.XPTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.XPTransaction
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *xpTransactionRepo) CountBySource(ctx context.Context, tx *gorm.DB, userID uuid.UUID, sourceType types.XPSourceType, sourceID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(ctx).
		Model(&types.XPTransaction{}).
		Where("user_id = ? AND source_type = ? AND source_id = ?", userID, sourceType, sourceID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *xpTransactionRepo) SumByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.XPTransaction{}).
		Select("COALESCE(SUM(xp_amount), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *xpTransactionRepo) ListUserIDs(ctx context.Context, tx *gorm.DB, limit int) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	q := transaction.WithContext(ctx).
		Model(&types.XPTransaction{}).
		Distinct("user_id").
		Order("user_id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
