package approval

import (
	"context"
	"errors"
	"strings"
	"time"

	domainApproval "timesheet-backend/internal/domain/approval"
	"timesheet-backend/internal/domain/form"
	"timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/domain/uow"
	"timesheet-backend/internal/domain/user"
	"timesheet-backend/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	subRepo      submission.Repository
	approvalRepo domainApproval.Repository
	uow          uow.UnitOfWork
	log          *zap.Logger
	now          func() time.Time
}

// NewUsecase: pass both repos and a UoW for tx flows.
func NewUsecase(subs submission.Repository, approvals domainApproval.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{subRepo: subs, approvalRepo: approvals, uow: tx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// RecordApproval locks the submission and applies the decision in one transaction.
func (u *Usecase) RecordApproval(ctx context.Context, in RecordInput) (*ApprovalDTO, error) {
	if u.uow == nil {
		return nil, submission.ErrInvalidTransition
	}
	var dto ApprovalDTO
	err := u.uow.WithinSubmissionTx(ctx, in.SubmissionID, func(r uow.Repos, s *submission.Submission) error {
		t, err := r.Templates.GetByID(ctx, s.FormTemplateID)
		if err != nil {
			return err
		}
		a, err := u.Decide(ctx, r, s, t, in.DecideInput)
		if err != nil {
			return err
		}
		dto = toDTO(*a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Decide is the only path that moves a submission out of PENDING. Callers
// must already hold the submission row lock inside r's transaction.
func (u *Usecase) Decide(ctx context.Context, r uow.Repos, s *submission.Submission, t *form.Template, in DecideInput) (*domainApproval.Approval, error) {
	if !in.Decision.Valid() {
		return nil, domainApproval.ErrInvalidDecision
	}
	if !t.IsApprovalRequired {
		return nil, domainApproval.ErrApprovalNotRequired
	}
	if s.Status.Terminal() {
		return nil, domainApproval.ErrAlreadyDecided
	}
	if s.Status != submission.StatusPending {
		return nil, submission.ErrInvalidTransition
	}
	if strings.TrimSpace(in.Comment) == "" {
		return nil, domainApproval.ErrCommentRequired
	}
	if in.Decision == domainApproval.DecisionApproved && t.IsSignatureRequired && strings.TrimSpace(in.Signature) == "" {
		return nil, domainApproval.ErrSignatureRequired
	}

	name := in.ApproverID
	approver, err := r.Users.GetByID(ctx, in.ApproverID)
	switch {
	case err == nil:
		if full := approver.FullName(); full != "" {
			name = full
		}
	case errors.Is(err, user.ErrNotFound):
		u.log.Warn("approver not found, storing id as name", zap.String("approver_id", in.ApproverID))
	default:
		return nil, err
	}

	now := u.now()
	a := &domainApproval.Approval{
		ID:               id.NewID32(),
		FormSubmissionID: s.ID,
		SignedBy:         in.ApproverID,
		Approver:         name,
		Signature:        in.Signature,
		Comment:          strings.TrimSpace(in.Comment),
		Decision:         in.Decision,
		SubmittedAt:      now,
		UpdatedAt:        now,
	}
	if err := r.Approvals.Create(ctx, a); err != nil {
		return nil, err
	}

	if err := s.Transition(submission.Status(in.Decision), now); err != nil {
		return nil, err
	}
	if err := r.Submissions.Save(ctx, s); err != nil {
		return nil, err
	}

	u.log.Info("submission decided",
		zap.String("submission_id", s.ID),
		zap.String("decision", string(in.Decision)),
		zap.String("approver_id", in.ApproverID))
	return a, nil
}

// History lists every approval of a submission, newest first.
func (u *Usecase) History(ctx context.Context, submissionID string) ([]ApprovalDTO, error) {
	if _, err := u.subRepo.GetByID(ctx, submissionID); err != nil {
		return nil, err
	}
	list, err := u.approvalRepo.ListBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	domainApproval.SortRecent(list)
	out := make([]ApprovalDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toDTO(a))
	}
	return out, nil
}

func (u *Usecase) Current(ctx context.Context, submissionID string) (*ApprovalDTO, error) {
	if _, err := u.subRepo.GetByID(ctx, submissionID); err != nil {
		return nil, err
	}
	list, err := u.approvalRepo.ListBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	a, ok := domainApproval.Current(list)
	if !ok {
		return nil, domainApproval.ErrNotFound
	}
	dto := toDTO(*a)
	return &dto, nil
}
