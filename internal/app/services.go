package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/thorbis-backend/internal/observability"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	XP             services.XPService
	CourseProgress services.CourseProgressService
	Progress       services.ProgressService
	Notifier       services.ProgressNotifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	rules, err := services.LoadGamificationRules(cfg.GamificationRulesPath)
	if err != nil {
		return Services{}, fmt.Errorf("load gamification rules: %w", err)
	}

	authService := services.NewAuthService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	notifier := services.NewProgressNotifier(log, clients.ProgressBus)

	xpService := services.NewXPService(
		db, log,
		repos.Gamification.XPTransaction,
		repos.Gamification.UserXP,
		rules,
		metrics,
	)
	courseProgressService := services.NewCourseProgressService(
		db, log,
		repos.Learning.Lesson,
		repos.Learning.Enrollment,
		repos.Learning.LessonProgress,
	)
	progressService := services.NewProgressService(services.ProgressServiceDeps{
		DB:             db,
		Log:            log,
		Lessons:        repos.Learning.Lesson,
		Courses:        repos.Learning.Course,
		Enrollments:    repos.Learning.Enrollment,
		Progress:       repos.Learning.LessonProgress,
		XP:             xpService,
		CourseProgress: courseProgressService,
		Notifier:       notifier,
		Metrics:        metrics,
	})

	return Services{
		Auth:           authService,
		XP:             xpService,
		CourseProgress: courseProgressService,
		Progress:       progressService,
		Notifier:       notifier,
	}, nil
}
