package services

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/yungbote/thorbis-backend/internal/services")
