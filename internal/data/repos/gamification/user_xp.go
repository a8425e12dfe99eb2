package gamification

import (
	"context"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/thorbis-backend/internal/domain"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserXPRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserXP, error)
	// Increment adds delta to the user's counter in one statement, creating
	// the counter row on first use.
	Increment(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int64) error
	// ResetFromLedger overwrites the counter with the ledger sum and returns it.
	ResetFromLedger(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type userXPRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserXPRepo(db *gorm.DB, baseLog *logger.Logger) UserXPRepo {
	repoLog := baseLog.With("repo", "UserXPRepo")
	return &userXPRepo{db: db, log: repoLog}
}

// GetByUserID returns a zero counter when the user has never earned XP.
func (r *userXPRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserXP, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserXP
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &types.UserXP{UserID: userID}, nil
	}
	return results[0], nil
}

func (r *userXPRepo) Increment(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if delta == 0 {
		return nil
	}
	now := time.Now().UTC()
	row := &types.UserXP{UserID: userID, TotalXP: delta, UpdatedAt: now}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_xp":   gorm.Expr("user_xp.total_xp + excluded.total_xp"),
				"updated_at": now,
			}),
		}).
		Create(row).Error
}

// ResetFromLedger runs in its own transaction (a savepoint under tx). The
// counter row is created if missing and then locked, so an award that commits
// while the reset runs either lands in the ledger sum or increments after it.
func (r *userXPRepo) ResetFromLedger(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total int64
	err := transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		now := time.Now().UTC()
		if err := txx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&types.UserXP{UserID: userID, UpdatedAt: now}).Error; err != nil {
			return err
		}

		lock := txx.Where("user_id = ?", userID)
		// SQLite serializes writers and has no row locks.
		if txx.Dialector.Name() == "postgres" {
			lock = lock.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var locked types.UserXP
		if err := lock.Take(&locked).Error; err != nil {
			return err
		}

		if err := txx.Model(&types.XPTransaction{}).
			Select("COALESCE(SUM(xp_amount), 0)").
			Where("user_id = ?", userID).
			Scan(&total).Error; err != nil {
			return err
		}
		return txx.Model(&types.UserXP{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{"total_xp": total, "updated_at": now}).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
