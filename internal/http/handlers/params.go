package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/thorbis-backend/internal/pkg/ctxutil"
	apperrors "github.com/yungbote/thorbis-backend/internal/pkg/errors"
	"github.com/yungbote/thorbis-backend/internal/platform/apierr"
)

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return uuid.Nil, apperrors.Validation("%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid %s", name)
	}
	return id, nil
}

// actingUser resolves the user a request acts for. When bearer auth attached
// a caller, a missing userId defaults to that caller and a different one is
// refused.
func actingUser(c *gin.Context, raw string) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if rd != nil && rd.UserID != uuid.Nil {
			return rd.UserID, nil
		}
		return uuid.Nil, apperrors.Validation("userId is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid userId")
	}
	if rd != nil && rd.UserID != uuid.Nil && rd.UserID != id {
		return uuid.Nil, apierr.New(http.StatusForbidden, "forbidden", errors.New("userId does not match token subject"))
	}
	return id, nil
}
