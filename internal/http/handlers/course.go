package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/thorbis-backend/internal/http/response"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/services"
)

type CourseHandler struct {
	log            *logger.Logger
	courseProgress services.CourseProgressService
}

func NewCourseHandler(log *logger.Logger, courseProgress services.CourseProgressService) *CourseHandler {
	return &CourseHandler{
		log:            log.With("handler", "CourseHandler"),
		courseProgress: courseProgress,
	}
}

// GET /api/courses/:courseId/progress?userId=
func (h *CourseHandler) GetProgress(c *gin.Context) {
	courseID, err := pathUUID(c, "courseId")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	userID, err := actingUser(c, c.Query("userId"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	cp, err := h.courseProgress.GetCourseProgress(c.Request.Context(), courseID, userID)
	if err != nil {
		h.log.Warn("GetProgress failed", "course_id", courseID, "user_id", userID, "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollment": cp})
}
