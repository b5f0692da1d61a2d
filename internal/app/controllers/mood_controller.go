package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/app/services"
	"github.com/aylin/campuswell/internal/middleware"
)

// MoodController handles mood tracking endpoints
type MoodController struct {
	moodService *services.MoodService
	logger      zerolog.Logger
}

// NewMoodController creates a new MoodController
func NewMoodController(moodService *services.MoodService, logger zerolog.Logger) *MoodController {
	return &MoodController{
		moodService: moodService,
		logger:      logger,
	}
}

// CreateEntry records a mood entry
// @Summary Record mood
// @Description Records a mood score from 1 (worst) to 5 (best) with an optional note.
// @Tags mood
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMoodEntryRequest true "Mood entry"
// @Success 201 {object} dto.APIResponse "Entry recorded"
// @Failure 400 {object} dto.ErrorResponse "Score out of range"
// @Router /moods [post]
func (c *MoodController) CreateEntry(ctx *gin.Context) {
	var req dto.CreateMoodEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	entry, err := c.moodService.CreateEntry(ctx.Request.Context(), ctx.GetInt64("userID"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(entry))
}

// History returns recent entries with analytics
// @Summary Mood history
// @Description Returns the caller's recent mood entries with average score and trend.
// @Tags mood
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MoodListResponse} "Entries and analytics"
// @Router /moods [get]
func (c *MoodController) History(ctx *gin.Context) {
	resp, err := c.moodService.History(ctx.Request.Context(), ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// WellnessActions suggests three micro-habits
// @Summary Wellness actions
// @Description Suggests three personalized micro-habits based on the caller's latest mood entry. Falls back to generic suggestions when the AI provider is unavailable.
// @Tags mood
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.WellnessActionResponse} "Suggested actions"
// @Router /moods/actions [get]
func (c *MoodController) WellnessActions(ctx *gin.Context) {
	actions, err := c.moodService.WellnessActions(ctx.Request.Context(), ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	views := make([]dto.WellnessActionResponse, 0, len(actions))
	for _, action := range actions {
		views = append(views, dto.WellnessActionResponse{
			Title:       action.Title,
			Description: action.Description,
		})
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(views))
}
