package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/thorbis-backend/internal/http/response"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/services"
)

type UserHandler struct {
	log *logger.Logger
	xp  services.XPService
}

func NewUserHandler(log *logger.Logger, xp services.XPService) *UserHandler {
	return &UserHandler{log: log.With("handler", "UserHandler"), xp: xp}
}

// GET /api/users/:userId/xp?limit=
func (h *UserHandler) GetXP(c *gin.Context) {
	userID, err := actingUser(c, c.Param("userId"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	summary, err := h.xp.GetUserXP(c.Request.Context(), userID, limit)
	if err != nil {
		h.log.Error("GetXP failed", "user_id", userID, "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, summary)
}
