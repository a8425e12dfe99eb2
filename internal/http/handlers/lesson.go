package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/thorbis-backend/internal/domain"
	"github.com/yungbote/thorbis-backend/internal/http/response"
	apperrors "github.com/yungbote/thorbis-backend/internal/pkg/errors"
	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/services"
)

type LessonHandler struct {
	log      *logger.Logger
	progress services.ProgressService
}

func NewLessonHandler(log *logger.Logger, progress services.ProgressService) *LessonHandler {
	return &LessonHandler{
		log:      log.With("handler", "LessonHandler"),
		progress: progress,
	}
}

type lessonProgressView struct {
	ID                 *uuid.UUID          `json:"id,omitempty"`
	LessonID           uuid.UUID           `json:"lesson_id"`
	UserID             uuid.UUID           `json:"user_id"`
	CourseID           *uuid.UUID          `json:"course_id,omitempty"`
	ProgressPercentage float64             `json:"progress_percentage"`
	TimeSpentMinutes   int                 `json:"time_spent_minutes"`
	CurrentPosition    datatypes.JSON      `json:"current_position,omitempty"`
	CompletionData     datatypes.JSON      `json:"completion_data,omitempty"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
	UpdatedAt          *time.Time          `json:"updated_at,omitempty"`
	Status             types.ProgressState `json:"status"`
}

func newLessonProgressView(p *types.LessonProgress) lessonProgressView {
	v := lessonProgressView{
		LessonID:           p.LessonID,
		UserID:             p.UserID,
		ProgressPercentage: p.ProgressPercentage,
		TimeSpentMinutes:   p.TimeSpentMinutes,
		CurrentPosition:    p.CurrentPosition,
		CompletionData:     p.CompletionData,
		CompletedAt:        p.CompletedAt,
		Status:             p.State(),
	}
	if p.ID != uuid.Nil {
		v.ID = &p.ID
		v.CourseID = &p.CourseID
		v.UpdatedAt = &p.UpdatedAt
	}
	return v
}

// GET /api/lessons/:lessonId/progress?userId=
func (h *LessonHandler) GetProgress(c *gin.Context) {
	lessonID, err := pathUUID(c, "lessonId")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	userID, err := actingUser(c, c.Query("userId"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	row, err := h.progress.GetLessonProgress(c.Request.Context(), lessonID, userID)
	if err != nil {
		h.log.Error("GetProgress failed", "lesson_id", lessonID, "user_id", userID, "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": newLessonProgressView(row)})
}

type updateProgressRequest struct {
	UserID             string          `json:"userId"`
	ProgressPercentage *float64        `json:"progressPercentage"`
	TimeSpent          *int            `json:"timeSpent"`
	CurrentPosition    json.RawMessage `json:"currentPosition"`
	CompletionData     json.RawMessage `json:"completionData"`
}

// PUT /api/lessons/:lessonId/progress
func (h *LessonHandler) UpdateProgress(c *gin.Context) {
	lessonID, err := pathUUID(c, "lessonId")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondAPIError(c, apperrors.Validation("invalid request body: %v", err))
		return
	}
	userID, err := actingUser(c, req.UserID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if req.ProgressPercentage == nil {
		response.RespondAPIError(c, apperrors.Validation("progressPercentage is required"))
		return
	}

	res, err := h.progress.RecordLessonProgress(c.Request.Context(), services.RecordProgressInput{
		LessonID:           lessonID,
		UserID:             userID,
		ProgressPercentage: req.ProgressPercentage,
		TimeSpent:          req.TimeSpent,
		CurrentPosition:    rawJSON(req.CurrentPosition),
		CompletionData:     rawJSON(req.CompletionData),
	})
	if err != nil {
		h.log.Warn("UpdateProgress failed", "lesson_id", lessonID, "user_id", userID, "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": newLessonProgressView(res.Progress)})
}

// rawJSON treats an absent or null field as "not provided".
func rawJSON(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}
