package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aylin/campuswell/internal/app/models/dto"
	"github.com/aylin/campuswell/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// this for every service error so the status and code mapping stays in one
// place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrPostNotFound),
		errors.Is(err, apperrors.ErrAppointmentNotFound),
		errors.Is(err, apperrors.ErrCounselorNotFound),
		errors.Is(err, apperrors.ErrAssessmentNotFound):
		respond(c, 404, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, 403, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"))
	case errors.Is(err, apperrors.ErrOnboardingIncomplete):
		respond(c, 403, dto.NewErrorDetail(dto.ErrorCodeOnboardingIncomplete, "Onboarding not completed"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Account is disabled"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, 401, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"))
	case errors.Is(err, apperrors.ErrInvalidTransition):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, err.Error()))
	case errors.Is(err, apperrors.ErrInvalidOTPCode):
		respond(c, 400, dto.NewErrorDetail(dto.ErrorCodeInvalidOTP, "Invalid verification code"))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(c, 400, validationDetail(err))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"))
	case errors.Is(err, apperrors.ErrUsernameExists):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Username already exists"))
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respond(c, 409, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()))
	default:
		respond(c, 500, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func respond(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	})
}

// validationDetail surfaces the failing field name when the error carries one.
func validationDetail(err error) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		if field, ok := custom.Details["field"].(string); ok {
			detail = detail.WithField(field)
		}
	}
	return detail
}
