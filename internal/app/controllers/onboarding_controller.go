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

// OnboardingController drives the onboarding state machine over HTTP
type OnboardingController struct {
	onboardingService *services.OnboardingService
	logger            zerolog.Logger
}

// NewOnboardingController creates a new OnboardingController
func NewOnboardingController(onboardingService *services.OnboardingService, logger zerolog.Logger) *OnboardingController {
	return &OnboardingController{
		onboardingService: onboardingService,
		logger:            logger,
	}
}

// VerifyIdentity consumes the emailed verification code
// @Summary Verify identity
// @Description Consumes the emailed 6-digit code and advances onboarding to role selection.
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyIdentityRequest true "Verification code"
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingResponse} "Identity verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 409 {object} dto.ErrorResponse "Not in the identity verification step"
// @Router /onboarding/verify [post]
func (c *OnboardingController) VerifyIdentity(ctx *gin.Context) {
	var req dto.VerifyIdentityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.onboardingService.VerifyIdentity(ctx.Request.Context(), ctx.GetInt64("userID"), req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.OnboardingResponse{
		Message: "Identity verified",
		User:    dto.NewUserResponse(user),
	}))
}

// SelectRole records the chosen account role
// @Summary Select role
// @Description Records the account role and advances onboarding to profile setup.
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SelectRoleRequest true "Chosen role"
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingResponse} "Role selected"
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 409 {object} dto.ErrorResponse "Not in the role selection step"
// @Router /onboarding/role [post]
func (c *OnboardingController) SelectRole(ctx *gin.Context) {
	var req dto.SelectRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.onboardingService.SelectRole(ctx.Request.Context(), ctx.GetInt64("userID"), req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.OnboardingResponse{
		Message: "Role selected",
		User:    dto.NewUserResponse(user),
	}))
}

// CompleteProfile finishes onboarding for roles without document review
// @Summary Complete profile
// @Description Stores profile fields and activates the account. Roles that need document review must use the documents endpoint instead.
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileSetupRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingResponse} "Onboarding completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Not in the profile setup step"
// @Router /onboarding/profile [post]
func (c *OnboardingController) CompleteProfile(ctx *gin.Context) {
	var req dto.ProfileSetupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.onboardingService.CompleteProfile(ctx.Request.Context(), ctx.GetInt64("userID"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.OnboardingResponse{
		Message: "Onboarding completed",
		User:    dto.NewUserResponse(user),
	}))
}

// SubmitDocuments uploads verification documents for review
// @Summary Submit verification documents
// @Description Stores profile fields plus uploaded documents and parks the account in audit_pending until an admin decides. Multipart form with firstName, lastName, optional phoneNumber, documentType and one or more files under "documents".
// @Tags onboarding
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param firstName formData string true "First name"
// @Param lastName formData string true "Last name"
// @Param phoneNumber formData string false "Phone number"
// @Param documentType formData string true "Document type" Enums(id_proof, business_doc, compliance_form)
// @Param documents formData file true "Verification documents"
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingResponse} "Documents submitted"
// @Failure 400 {object} dto.ErrorResponse "Missing fields or documents"
// @Failure 409 {object} dto.ErrorResponse "Not in the profile setup step"
// @Router /onboarding/documents [post]
func (c *OnboardingController) SubmitDocuments(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid multipart form")))
		return
	}

	req := dto.ProfileSetupRequest{
		FirstName: ctx.PostForm("firstName"),
		LastName:  ctx.PostForm("lastName"),
	}
	if req.FirstName == "" || req.LastName == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "firstName and lastName are required")))
		return
	}
	if phone := ctx.PostForm("phoneNumber"); phone != "" {
		req.PhoneNumber = &phone
	}

	docType := ctx.PostForm("documentType")
	if docType == "" {
		docType = "id_proof"
	}

	user, err := c.onboardingService.SubmitDocuments(ctx.Request.Context(), ctx.GetInt64("userID"), &req, docType, form.File["documents"])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.OnboardingResponse{
		Message: "Documents submitted for review",
		User:    dto.NewUserResponse(user),
	}))
}

// Status returns the caller's onboarding position
// @Summary Onboarding status
// @Description Returns the caller's onboarding state and any uploaded documents.
// @Tags onboarding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingResponse} "Current status"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /onboarding/status [get]
func (c *OnboardingController) Status(ctx *gin.Context) {
	user, docs, err := c.onboardingService.Status(ctx.Request.Context(), ctx.GetInt64("userID"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	docViews := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		docViews = append(docViews, dto.DocumentResponse{
			ID:     doc.ID,
			Type:   doc.Type,
			Status: string(doc.Status),
		})
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"user":      dto.NewUserResponse(user),
		"documents": docViews,
	}))
}

// Review is the admin decision on a document-path user
// @Summary Review onboarding documents
// @Description Admin approves or rejects an audit_pending user. Approval activates the account, rejection is terminal.
// @Tags onboarding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.AdminReviewRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingResponse} "Decision applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 409 {object} dto.ErrorResponse "User is not awaiting review"
// @Router /admin/onboarding/{id}/review [post]
func (c *OnboardingController) Review(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user id")))
		return
	}

	var req dto.AdminReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.onboardingService.Review(ctx.Request.Context(), userID, req.Status == "active")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.OnboardingResponse{
		Message: "Review decision applied",
		User:    dto.NewUserResponse(user),
	}))
}
