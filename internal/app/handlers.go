package app

import (
	httpH "github.com/yungbote/thorbis-backend/internal/http/handlers"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Lesson *httpH.LessonHandler
	Course *httpH.CourseHandler
	User   *httpH.UserHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Lesson: httpH.NewLessonHandler(log, services.Progress),
		Course: httpH.NewCourseHandler(log, services.CourseProgress),
		User:   httpH.NewUserHandler(log, services.XP),
	}
}
