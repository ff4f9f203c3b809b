package http

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	domainApproval "timesheet-backend/internal/domain/approval"
	domainCrew "timesheet-backend/internal/domain/crew"
	"timesheet-backend/internal/domain/form"
	domainRef "timesheet-backend/internal/domain/reference"
	domainSubmission "timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/domain/user"
	"timesheet-backend/internal/usecase/autosave"
	"timesheet-backend/internal/usecase/export"
	"timesheet-backend/internal/usecase/passwordreset"

	"github.com/labstack/echo/v4"
)

// HeaderUserID carries the caller identity set by the upstream auth layer.
const HeaderUserID = "X-User-Id"

func callerID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
}

// bind decodes and validates the body. A non-nil error has already been
// written to the response; the handler must return nil.
func bind(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// writeError maps domain errors → HTTP codes.
func writeError(c echo.Context, err error) error {
	var ve *domainSubmission.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   ve.Message,
			Code:    "VALIDATION_FAILED",
			Details: validationDetails(ve),
		})
	}
	var ce *domainRef.ConfirmationError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: ce.Warning, Code: "CONFIRMATION_REQUIRED"})
	}

	switch {
	case errors.Is(err, form.ErrNotFound),
		errors.Is(err, form.ErrFieldNotFound),
		errors.Is(err, domainSubmission.ErrNotFound),
		errors.Is(err, domainApproval.ErrNotFound),
		errors.Is(err, domainRef.ErrNotFound),
		errors.Is(err, domainCrew.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})

	case errors.Is(err, domainSubmission.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error(), Code: "FORBIDDEN"})

	case errors.Is(err, domainSubmission.ErrInvalidTransition),
		errors.Is(err, domainSubmission.ErrNotDraft),
		errors.Is(err, domainApproval.ErrAlreadyDecided),
		errors.Is(err, domainApproval.ErrApprovalNotRequired),
		errors.Is(err, form.ErrNotActive):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "CONFLICT"})

	case errors.Is(err, domainApproval.ErrCommentRequired),
		errors.Is(err, domainApproval.ErrSignatureRequired),
		errors.Is(err, domainApproval.ErrInvalidDecision),
		errors.Is(err, domainRef.ErrInvalidInput),
		errors.Is(err, domainRef.ErrDuplicateAllTag),
		errors.Is(err, domainCrew.ErrInvalidType),
		errors.Is(err, domainCrew.ErrLeadMissing),
		errors.Is(err, form.ErrUnknownType),
		errors.Is(err, form.ErrTemplateInvalid),
		errors.Is(err, passwordreset.ErrPasswordMismatch),
		errors.Is(err, passwordreset.ErrWeakPassword):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "VALIDATION_FAILED"})

	case errors.Is(err, domainRef.ErrProtectedTag):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "PROTECTED"})

	case errors.Is(err, export.ErrInvalidRange),
		errors.Is(err, export.ErrInvalidFormat):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, passwordreset.ErrTokenInvalid):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: passwordreset.CodeTokenInvalid})
	case errors.Is(err, passwordreset.ErrTokenExpired):
		return c.JSON(http.StatusGone, ErrorResponse{Error: err.Error(), Code: passwordreset.CodeTokenExpired})

	case errors.Is(err, autosave.ErrClosed):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	}

	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func validationDetails(ve *domainSubmission.ValidationError) []FieldError {
	out := make([]FieldError, 0, len(ve.Fields))
	for f, msg := range ve.Fields {
		out = append(out, FieldError{Field: f, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
