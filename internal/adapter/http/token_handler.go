package http

import (
	"net/http"

	"timesheet-backend/internal/usecase/passwordreset"

	"github.com/labstack/echo/v4"
)

type TokenHandler struct{ uc *passwordreset.Usecase }

func NewTokenHandler(uc *passwordreset.Usecase) *TokenHandler { return &TokenHandler{uc: uc} }

type issueTokenReq struct {
	UserID string `json:"userId" validate:"required,hex32"`
}

func (h *TokenHandler) Issue(c echo.Context) error {
	var req issueTokenReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	out, err := h.uc.Issue(c.Request().Context(), req.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// Verify answers 200 for a usable token, 404 TOKEN_INVALID or 410 TOKEN_EXPIRED.
func (h *TokenHandler) Verify(c echo.Context) error {
	v, err := h.uc.Verify(c.Request().Context(), c.Param("token"))
	if err != nil {
		return writeError(c, err)
	}
	switch v.Code {
	case passwordreset.CodeTokenInvalid:
		return c.JSON(http.StatusNotFound, v)
	case passwordreset.CodeTokenExpired:
		return c.JSON(http.StatusGone, v)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *TokenHandler) Reset(c echo.Context) error {
	var req passwordreset.ResetInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if err := h.uc.Reset(c.Request().Context(), c.Param("token"), req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"reset": true})
}

func (h *TokenHandler) Invalidate(c echo.Context) error {
	if err := h.uc.Invalidate(c.Request().Context(), c.Param("token")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
