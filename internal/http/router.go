package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/thorbis-backend/internal/http/handlers"
	httpMW "github.com/yungbote/thorbis-backend/internal/http/middleware"
	"github.com/yungbote/thorbis-backend/internal/observability"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	OtelEnabled bool
	CORSOrigins []string

	// AuthMiddleware guards /api when set; nil leaves the API open.
	AuthMiddleware *httpMW.AuthMiddleware

	LessonHandler *httpH.LessonHandler
	CourseHandler *httpH.CourseHandler
	UserHandler   *httpH.UserHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.OtelEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Lesson progress
		if cfg.LessonHandler != nil {
			api.GET("/lessons/:lessonId/progress", cfg.LessonHandler.GetProgress)
			api.PUT("/lessons/:lessonId/progress", cfg.LessonHandler.UpdateProgress)
		}

		// Course progress
		if cfg.CourseHandler != nil {
			api.GET("/courses/:courseId/progress", cfg.CourseHandler.GetProgress)
		}

		// XP
		if cfg.UserHandler != nil {
			api.GET("/users/:userId/xp", cfg.UserHandler.GetXP)
		}
	}

	return r
}
