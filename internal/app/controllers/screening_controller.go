package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/app/services"
	"github.com/aylin/campuswell/internal/middleware"
)

// ScreeningController handles screening assessment endpoints
type ScreeningController struct {
	screeningService *services.ScreeningService
	logger           zerolog.Logger
}

// NewScreeningController creates a new ScreeningController
func NewScreeningController(screeningService *services.ScreeningService, logger zerolog.Logger) *ScreeningController {
	return &ScreeningController{
		screeningService: screeningService,
		logger:           logger,
	}
}

// Submit scores and stores a screening questionnaire
// @Summary Submit screening
// @Description Scores the questionnaire answers, stores the assessment with its generated analysis, and updates the profile's latest risk level.
// @Tags screening
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitScreeningRequest true "Questionnaire answers (question id to value 0..3)"
// @Success 201 {object} dto.APIResponse{data=dto.ScreeningResponse} "Assessment recorded"
// @Failure 400 {object} dto.ErrorResponse "Empty answers or out-of-range values"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /screenings [post]
func (c *ScreeningController) Submit(ctx *gin.Context) {
	var req dto.SubmitScreeningRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	assessment, err := c.screeningService.Submit(ctx.Request.Context(), ctx.GetInt64("userID"), req.Answers)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewScreeningResponse(assessment)))
}

// Latest returns the caller's most recent assessment
// @Summary Latest screening
// @Description Returns the caller's most recent screening assessment.
// @Tags screening
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ScreeningResponse} "Latest assessment"
// @Failure 404 {object} dto.ErrorResponse "No assessments yet"
// @Router /screenings/latest [get]
func (c *ScreeningController) Latest(ctx *gin.Context) {
	assessment, err := c.screeningService.Latest(ctx.Request.Context(), ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewScreeningResponse(assessment)))
}

// History returns all of the caller's assessments
// @Summary Screening history
// @Description Returns all of the caller's screening assessments, newest first.
// @Tags screening
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ScreeningResponse} "Assessment history"
// @Router /screenings [get]
func (c *ScreeningController) History(ctx *gin.Context) {
	assessments, err := c.screeningService.History(ctx.Request.Context(), ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	views := make([]dto.ScreeningResponse, 0, len(assessments))
	for _, assessment := range assessments {
		views = append(views, dto.NewScreeningResponse(assessment))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(views))
}
