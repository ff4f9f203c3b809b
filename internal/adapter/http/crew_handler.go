package http

import (
	"net/http"

	"timesheet-backend/internal/usecase/crew"

	"github.com/labstack/echo/v4"
)

type CrewHandler struct{ uc *crew.Usecase }

func NewCrewHandler(uc *crew.Usecase) *CrewHandler { return &CrewHandler{uc: uc} }

func (h *CrewHandler) Create(c echo.Context) error {
	var req crew.CreateInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	out, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CrewHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CrewHandler) Get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CrewHandler) Update(c echo.Context) error {
	var req crew.UpdateInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	out, err := h.uc.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CrewHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
