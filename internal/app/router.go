package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/thorbis-backend/internal/http"
	"github.com/yungbote/thorbis-backend/internal/observability"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    cfg.Otel.ServiceName,
		OtelEnabled:    cfg.Otel.Enabled,
		CORSOrigins:    cfg.CORSOrigins,
		AuthMiddleware: middleware.Auth,
		LessonHandler:  handlers.Lesson,
		CourseHandler:  handlers.Course,
		UserHandler:    handlers.User,
		HealthHandler:  handlers.Health,
	})
}
