package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aylin/campuswell/internal/app/models"
	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/app/services"
	"github.com/aylin/campuswell/internal/middleware"
)

// AppointmentController handles counseling appointment endpoints
type AppointmentController struct {
	appointmentService *services.AppointmentService
	logger             zerolog.Logger
}

// NewAppointmentController creates a new AppointmentController
func NewAppointmentController(appointmentService *services.AppointmentService, logger zerolog.Logger) *AppointmentController {
	return &AppointmentController{
		appointmentService: appointmentService,
		logger:             logger,
	}
}

// Create books an appointment
// @Summary Book appointment
// @Description Books a counseling appointment. The counselor may be left unassigned for later matching.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAppointmentRequest true "Appointment details"
// @Success 201 {object} dto.APIResponse "Appointment created"
// @Failure 400 {object} dto.ErrorResponse "Date in the past"
// @Failure 404 {object} dto.ErrorResponse "Counselor not found"
// @Router /appointments [post]
func (c *AppointmentController) Create(ctx *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	appt, err := c.appointmentService.Create(ctx.Request.Context(), ctx.GetInt64("userID"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(appt))
}

// List returns the caller's visible appointments
// @Summary List appointments
// @Description Students see their own bookings, counselors their assignments, admins everything.
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Appointments"
// @Router /appointments [get]
func (c *AppointmentController) List(ctx *gin.Context) {
	role := models.RoleType(ctx.GetString("roleType"))
	appts, err := c.appointmentService.List(ctx.Request.Context(), ctx.GetInt64("userID"), role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appts))
}

// Update changes an appointment
// @Summary Update appointment
// @Description Partial update of status, counselor assignment, date or notes. Students may only cancel their own appointments.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse "Updated appointment"
// @Failure 403 {object} dto.ErrorResponse "Not allowed for this role"
// @Failure 404 {object} dto.ErrorResponse "Appointment not found"
// @Router /appointments/{id} [patch]
func (c *AppointmentController) Update(ctx *gin.Context) {
	apptID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid appointment id")))
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role := models.RoleType(ctx.GetString("roleType"))
	appt, err := c.appointmentService.Update(ctx.Request.Context(), apptID, ctx.GetInt64("userID"), role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(appt))
}

// Counselors returns the bookable counselor listing
// @Summary List counselors
// @Description Returns the active counselors students can book.
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CounselorResponse} "Counselors"
// @Router /appointments/counselors [get]
func (c *AppointmentController) Counselors(ctx *gin.Context) {
	counselors, err := c.appointmentService.Counselors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(counselors))
}
