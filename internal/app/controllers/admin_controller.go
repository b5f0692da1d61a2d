package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/app/services"
	"github.com/aylin/campuswell/internal/middleware"
	"github.com/aylin/campuswell/internal/pkg/helpers"
)

// AdminController handles the admin dashboard endpoints
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// ListUsers returns a page of users
// @Summary List users
// @Description Returns a page of user accounts, optionally filtered by role and onboarding status.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(student, counselor, admin, partner)
// @Param status query string false "Onboarding status filter"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse "Users with pagination"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	users, pagination, err := c.adminService.ListUsers(ctx.Request.Context(), ctx.Query("role"), ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	views := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		views = append(views, dto.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"users":      views,
		"pagination": pagination,
	}))
}

// UpdateUser applies admin changes to an account
// @Summary Update user
// @Description Changes a user's role or onboarding status (activate, reject, deactivate).
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated user"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [patch]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user id")))
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.adminService.UpdateUser(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// Stats returns campus-wide dashboard numbers
// @Summary Institutional stats
// @Description Returns aggregate counters: users, posts, screenings, appointments, average mood and risk distribution.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InstitutionalStats} "Stats"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.adminService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// DailyInsight returns the cached daily analysis
// @Summary Daily insight
// @Description Returns the institutional insight for today, generating and caching it on the first request of the day.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InsightResponse} "Today's insight"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/insights/daily [get]
func (c *AdminController) DailyInsight(ctx *gin.Context) {
	insight, err := c.adminService.DailyInsight(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InsightResponse{
		Summary:        insight.Summary,
		TopConcerns:    insight.TopConcerns,
		Recommendation: insight.Recommendation,
	}))
}
