package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/app/services"
	"github.com/aylin/campuswell/internal/middleware"
)

// ResourceController handles resource library endpoints
type ResourceController struct {
	resourceService *services.ResourceService
	logger          zerolog.Logger
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService *services.ResourceService, logger zerolog.Logger) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		logger:          logger,
	}
}

// List returns library resources
// @Summary List resources
// @Description Returns self-help resources, optionally filtered by type and category. Public endpoint.
// @Tags resources
// @Produce json
// @Param type query string false "Resource type" Enums(video, audio, article, guide)
// @Param category query string false "Category"
// @Success 200 {object} dto.APIResponse "Resources"
// @Router /resources [get]
func (c *ResourceController) List(ctx *gin.Context) {
	resources, err := c.resourceService.List(ctx.Request.Context(), ctx.Query("type"), ctx.Query("category"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// Get returns one resource
// @Summary Get resource
// @Description Returns a single library resource. Public endpoint.
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse "Resource"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [get]
func (c *ResourceController) Get(ctx *gin.Context) {
	resourceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resource id")))
		return
	}

	resource, err := c.resourceService.Get(ctx.Request.Context(), resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// Create adds a resource
// @Summary Create resource
// @Description Adds a resource to the library. Admin only.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateResourceRequest true "Resource"
// @Success 201 {object} dto.APIResponse "Resource created"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/resources [post]
func (c *ResourceController) Create(ctx *gin.Context) {
	var req dto.CreateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resource, err := c.resourceService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// Delete removes a resource
// @Summary Delete resource
// @Description Removes a resource from the library. Admin only.
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Resource deleted"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /admin/resources/{id} [delete]
func (c *ResourceController) Delete(ctx *gin.Context) {
	resourceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resource id")))
		return
	}

	if err := c.resourceService.Delete(ctx.Request.Context(), resourceID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Resource deleted"}))
}
