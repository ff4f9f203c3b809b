package http

import (
	"net/http"

	domainApproval "timesheet-backend/internal/domain/approval"
	ucApproval "timesheet-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
)

type ApprovalHandler struct{ uc *ucApproval.Usecase }

func NewApprovalHandler(uc *ucApproval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

type recordApprovalReq struct {
	Decision  domainApproval.Decision `json:"decision"  validate:"required,oneof=APPROVED DENIED"`
	Comment   string                  `json:"comment"   validate:"required,max=2000"`
	Signature string                  `json:"signature"`
}

func (h *ApprovalHandler) Record(c echo.Context) error {
	// Validate path param
	submissionID := c.Param("id")
	if submissionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing id path param"})
	}
	// Bind + validate body payload JSON
	var req recordApprovalReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.uc.RecordApproval(c.Request().Context(), ucApproval.RecordInput{
		SubmissionID: submissionID,
		DecideInput: ucApproval.DecideInput{
			ApproverID: callerID(c),
			Decision:   req.Decision,
			Comment:    req.Comment,
			Signature:  req.Signature,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApprovalHandler) History(c echo.Context) error {
	list, err := h.uc.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ApprovalHandler) Current(c echo.Context) error {
	dto, err := h.uc.Current(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
