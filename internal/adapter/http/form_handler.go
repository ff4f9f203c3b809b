package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	domainSubmission "timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/usecase/export"
	"timesheet-backend/internal/usecase/submission"
	"timesheet-backend/internal/usecase/template"

	"github.com/labstack/echo/v4"
)

type FormHandler struct {
	templates *template.Usecase
	subs      *submission.Usecase
	export    *export.Usecase
}

func NewFormHandler(templates *template.Usecase, subs *submission.Usecase, exp *export.Usecase) *FormHandler {
	return &FormHandler{templates: templates, subs: subs, export: exp}
}

func (h *FormHandler) Create(c echo.Context) error {
	var req template.CreateTemplateInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	t, err := h.templates.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *FormHandler) List(c echo.Context) error {
	list, err := h.templates.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FormHandler) Get(c echo.Context) error {
	t, err := h.templates.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *FormHandler) SetStatus(c echo.Context) error {
	var req template.SetStatusInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	if err := h.templates.SetStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"id": c.Param("id"), "status": req.Status})
}

func (h *FormHandler) Options(c echo.Context) error {
	opts, err := h.templates.Options(c.Request().Context(), c.Param("id"), c.Param("field_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, opts)
}

// Submissions lists a template's submissions. Query: status=A,B from= to=.
func (h *FormHandler) Submissions(c echo.Context) error {
	r, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	f := domainSubmission.ListFilter{}
	if !r.From.IsZero() {
		f.From = &r.From
	}
	if !r.To.IsZero() {
		to := r.To.AddDate(0, 0, 1)
		f.To = &to
	}
	for _, s := range strings.Split(c.QueryParam("status"), ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			f.Statuses = append(f.Statuses, domainSubmission.Status(s))
		}
	}
	list, err := h.subs.ListByTemplate(c.Request().Context(), c.Param("id"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FormHandler) Table(c echo.Context) error {
	r, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	tbl, err := h.export.Table(c.Request().Context(), c.Param("id"), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tbl)
}

func (h *FormHandler) Export(c echo.Context) error {
	r, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	format := export.Format(strings.ToLower(c.QueryParam("format")))
	if format == "" {
		format = export.FormatCSV
	}
	res, err := h.export.Export(c.Request().Context(), c.Param("id"), r, format)
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
	c.Response().Header().Set("X-Export-Rows", strconv.Itoa(res.Rows))
	return c.Blob(http.StatusOK, res.ContentType, res.Body)
}

// parseRange reads from/to as 2006-01-02. Missing sides stay open.
func parseRange(c echo.Context) (export.Range, error) {
	var r export.Range
	for name, dst := range map[string]*time.Time{"from": &r.From, "to": &r.To} {
		raw := strings.TrimSpace(c.QueryParam(name))
		if raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return r, fmt.Errorf("%s must be YYYY-MM-DD: %w", name, err)
		}
		*dst = t
	}
	return r, nil
}
