package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/thorbis-backend/internal/data/repos"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

type LearningRepos struct {
	Course         repos.CourseRepo
	Lesson         repos.LessonRepo
	Enrollment     repos.EnrollmentRepo
	LessonProgress repos.LessonProgressRepo
}

type GamificationRepos struct {
	XPTransaction repos.XPTransactionRepo
	UserXP        repos.UserXPRepo
}

type Repos struct {
	Learning     LearningRepos
	Gamification GamificationRepos
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Learning: LearningRepos{
			Course:         repos.NewCourseRepo(db, log),
			Lesson:         repos.NewLessonRepo(db, log),
			Enrollment:     repos.NewEnrollmentRepo(db, log),
			LessonProgress: repos.NewLessonProgressRepo(db, log),
		},
		Gamification: GamificationRepos{
			XPTransaction: repos.NewXPTransactionRepo(db, log),
			UserXP:        repos.NewUserXPRepo(db, log),
		},
	}
}
