package repos

import (
	"github.com/yungbote/thorbis-backend/internal/data/repos/gamification"
	"github.com/yungbote/thorbis-backend/internal/data/repos/learning"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type CourseRepo = learning.CourseRepo
type LessonRepo = learning.LessonRepo
type EnrollmentRepo = learning.EnrollmentRepo
type LessonProgressRepo = learning.LessonProgressRepo

type XPTransactionRepo = gamification.XPTransactionRepo
type UserXPRepo = gamification.UserXPRepo

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return learning.NewLessonRepo(db, baseLog)
}
func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return learning.NewEnrollmentRepo(db, baseLog)
}
func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	return learning.NewLessonProgressRepo(db, baseLog)
}

func NewXPTransactionRepo(db *gorm.DB, baseLog *logger.Logger) XPTransactionRepo {
	return gamification.NewXPTransactionRepo(db, baseLog)
}
func NewUserXPRepo(db *gorm.DB, baseLog *logger.Logger) UserXPRepo {
	return gamification.NewUserXPRepo(db, baseLog)
}
