package db

import (
	"fmt"

	types "github.com/yungbote/thorbis-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// =========================
		// Catalog (read-only here)
		// =========================
		&types.Course{},
		&types.Lesson{},

		// =========================
		// Learner state
		// =========================
		&types.Enrollment{},
		&types.LessonProgress{},

		// =========================
		// Gamification
		// =========================
		&types.XPTransaction{},
		&types.UserXP{},
	)
}

// EnsureProgressIndexes re-asserts the unique keys the completion workflow
// relies on for upserts and award dedupe. AutoMigrate creates them from the
// model tags; this covers databases migrated before the tags existed.
func EnsureProgressIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_lesson_progress_lesson_user", `CREATE UNIQUE INDEX IF NOT EXISTS idx_lesson_progress_lesson_user ON lesson_progress (lesson_id, user_id);`},
		{"idx_enrollment_course_user", `CREATE UNIQUE INDEX IF NOT EXISTS idx_enrollment_course_user ON enrollment (course_id, user_id);`},
		{"idx_xp_transaction_source", `CREATE UNIQUE INDEX IF NOT EXISTS idx_xp_transaction_source ON xp_transaction (user_id, source_type, source_id);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
