package http

import (
	"net/http"
	"strconv"

	"timesheet-backend/internal/usecase/reference"

	"github.com/labstack/echo/v4"
)

type ReferenceHandler struct{ uc *reference.Usecase }

func NewReferenceHandler(uc *reference.Usecase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

func confirmed(c echo.Context) bool {
	v, _ := strconv.ParseBool(c.QueryParam("confirm"))
	return v
}

// ---- tags ----

func (h *ReferenceHandler) CreateTag(c echo.Context) error {
	var req reference.TagInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	t, err := h.uc.CreateTag(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *ReferenceHandler) ListTags(c echo.Context) error {
	list, err := h.uc.ListTags(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ReferenceHandler) GetTag(c echo.Context) error {
	t, err := h.uc.GetTag(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *ReferenceHandler) UpdateTag(c echo.Context) error {
	var req reference.TagInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	t, err := h.uc.UpdateTag(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *ReferenceHandler) DeleteTag(c echo.Context) error {
	if err := h.uc.DeleteTag(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- cost codes ----

func (h *ReferenceHandler) CreateCostCode(c echo.Context) error {
	var req reference.CostCodeInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	cc, err := h.uc.CreateCostCode(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cc)
}

func (h *ReferenceHandler) ListCostCodes(c echo.Context) error {
	list, err := h.uc.ListCostCodes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteCostCode answers 409 with a warning until repeated with ?confirm=true.
func (h *ReferenceHandler) DeleteCostCode(c echo.Context) error {
	if err := h.uc.DeleteCostCode(c.Request().Context(), c.Param("id"), confirmed(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- jobsites ----

func (h *ReferenceHandler) CreateJobsite(c echo.Context) error {
	var req reference.JobsiteInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	j, err := h.uc.CreateJobsite(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, j)
}

func (h *ReferenceHandler) ListJobsites(c echo.Context) error {
	list, err := h.uc.ListJobsites(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ReferenceHandler) SetJobsiteTags(c echo.Context) error {
	var req reference.JobsiteTagsInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if confirmed(c) {
		req.Confirm = true
	}
	j, err := h.uc.SetJobsiteTags(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, j)
}
