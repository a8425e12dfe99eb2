package app

import (
	httpMW "github.com/yungbote/thorbis-backend/internal/http/middleware"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

// wireMiddleware enables bearer auth only when a signing secret is configured.
func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	if cfg.JWTSecretKey == "" {
		return Middleware{}
	}
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}
