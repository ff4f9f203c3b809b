package http

import (
	"net/http"

	domainSubmission "timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/usecase/autosave"
	"timesheet-backend/internal/usecase/submission"

	"github.com/labstack/echo/v4"
)

type SubmissionHandler struct {
	uc     *submission.Usecase
	drafts *autosave.Buffer
}

func NewSubmissionHandler(uc *submission.Usecase, drafts *autosave.Buffer) *SubmissionHandler {
	return &SubmissionHandler{uc: uc, drafts: drafts}
}

func (h *SubmissionHandler) Create(c echo.Context) error {
	var req submission.CreateDraftInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	req.UserID = callerID(c)
	dto, err := h.uc.CreateDraft(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Mine lists the caller's own submissions, newest first.
func (h *SubmissionHandler) Mine(c echo.Context) error {
	list, err := h.uc.ListByUser(c.Request().Context(), callerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *SubmissionHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// SaveDraft queues an autosave patch. Ownership and draft status are checked
// up front so a queued patch is only rejected by later state changes.
func (h *SubmissionHandler) SaveDraft(c echo.Context) error {
	var req submission.SaveDraftInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	req.SubmissionID = c.Param("id")
	req.UserID = callerID(c)

	ctx := c.Request().Context()
	cur, err := h.uc.Get(ctx, req.SubmissionID)
	if err != nil {
		return writeError(c, err)
	}
	switch {
	case cur.UserID != req.UserID:
		return writeError(c, domainSubmission.ErrForbidden)
	case cur.Status != domainSubmission.StatusDraft:
		return writeError(c, domainSubmission.ErrNotDraft)
	}

	if h.drafts == nil {
		dto, err := h.uc.SaveDraft(ctx, req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, dto)
	}
	if err := h.drafts.Schedule(ctx, req); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]any{"id": req.SubmissionID, "queued": true})
}

func (h *SubmissionHandler) Submit(c echo.Context) error {
	var req submission.SubmitInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	req.SubmissionID = c.Param("id")
	req.UserID = callerID(c)

	ctx := c.Request().Context()
	// a pending autosave patch must land before validation
	if h.drafts != nil {
		if err := h.drafts.FlushOne(ctx, req.SubmissionID, req.UserID); err != nil {
			return writeError(c, err)
		}
	}
	dto, err := h.uc.Submit(ctx, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SubmissionHandler) AdminEdit(c echo.Context) error {
	var req submission.AdminEditInput
	if ok, err := bind(c, &req); !ok {
		return err
	}
	req.SubmissionID = c.Param("id")
	req.EditorID = callerID(c)
	dto, err := h.uc.AdminEdit(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SubmissionHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	// a queued autosave for this draft would otherwise fire after the delete
	if h.drafts != nil {
		if err := h.drafts.Discard(ctx, c.Param("id"), callerID(c)); err != nil {
			return writeError(c, err)
		}
	}
	if err := h.uc.DeleteDraft(ctx, c.Param("id"), callerID(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
