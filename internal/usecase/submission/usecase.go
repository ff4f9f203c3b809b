package submission

import (
	"context"
	"strings"
	"time"

	domainApproval "timesheet-backend/internal/domain/approval"
	"timesheet-backend/internal/domain/form"
	domainSubmission "timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/domain/uow"
	approvalUC "timesheet-backend/internal/usecase/approval"
	"timesheet-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Decider applies an approval decision inside an open transaction.
type Decider interface {
	Decide(ctx context.Context, r uow.Repos, s *domainSubmission.Submission, t *form.Template, in approvalUC.DecideInput) (*domainApproval.Approval, error)
}

type Usecase struct {
	templates form.Repository
	repo      domainSubmission.Repository
	uow       uow.UnitOfWork
	decider   Decider
	log       *zap.Logger
	now       func() time.Time
}

func NewUsecase(templates form.Repository, subs domainSubmission.Repository, tx uow.UnitOfWork, d Decider, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		templates: templates,
		repo:      subs,
		uow:       tx,
		decider:   d,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) CreateDraft(ctx context.Context, in CreateDraftInput) (*SubmissionDTO, error) {
	t, err := u.templates.GetByID(ctx, in.TemplateID)
	if err != nil {
		return nil, err
	}
	if t.Status != form.StatusActive {
		return nil, form.ErrNotActive
	}

	s := &domainSubmission.Submission{
		ID:             id.NewID32(),
		FormTemplateID: t.ID,
		UserID:         in.UserID,
		Title:          strings.TrimSpace(in.Title),
		Data:           datatypes.JSONMap(form.EncodeData(*t, in.Data, form.Native)),
		Status:         domainSubmission.StatusDraft,
	}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	u.log.Info("draft created", zap.String("submission_id", s.ID), zap.String("template_id", t.ID), zap.String("user_id", in.UserID))
	return toDTO(*t, *s), nil
}

// SaveDraft merges a patch into the caller's own draft. No validation runs.
func (u *Usecase) SaveDraft(ctx context.Context, in SaveDraftInput) (*SubmissionDTO, error) {
	var dto *SubmissionDTO
	err := u.uow.WithinSubmissionTx(ctx, in.SubmissionID, func(r uow.Repos, s *domainSubmission.Submission) error {
		if s.UserID != in.UserID {
			return domainSubmission.ErrForbidden
		}
		if s.Status != domainSubmission.StatusDraft {
			return domainSubmission.ErrNotDraft
		}
		t, err := r.Templates.GetByID(ctx, s.FormTemplateID)
		if err != nil {
			return err
		}

		merge(s, *t, in.Data)
		if in.Title != nil {
			s.Title = strings.TrimSpace(*in.Title)
		}
		if err := r.Submissions.Save(ctx, s); err != nil {
			return err
		}
		dto = toDTO(*t, *s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Submit moves a draft to PENDING once every required field is filled and,
// when the template asks for it, the submitter has signed. A failed check
// returns *ValidationError and leaves storage untouched.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmissionDTO, error) {
	var dto *SubmissionDTO
	err := u.uow.WithinSubmissionTx(ctx, in.SubmissionID, func(r uow.Repos, s *domainSubmission.Submission) error {
		if s.UserID != in.UserID {
			return domainSubmission.ErrForbidden
		}
		if !domainSubmission.CanTransition(s.Status, domainSubmission.StatusPending) {
			return domainSubmission.ErrInvalidTransition
		}
		t, err := r.Templates.GetByID(ctx, s.FormTemplateID)
		if err != nil {
			return err
		}

		merge(s, *t, in.Data)
		if ve := domainSubmission.Validate(form.Sort(*t), s.Data, in.Signed); ve != nil {
			return ve
		}

		s.Signed = in.Signed
		if err := s.Transition(domainSubmission.StatusPending, u.now()); err != nil {
			return err
		}
		if err := r.Submissions.Save(ctx, s); err != nil {
			return err
		}
		dto = toDTO(*t, *s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("submission submitted", zap.String("submission_id", in.SubmissionID), zap.String("user_id", in.UserID))
	return dto, nil
}

// AdminEdit rewrites submission data regardless of status. APPROVED and
// DENIED stay terminal; a decision is only applied to PENDING submissions.
func (u *Usecase) AdminEdit(ctx context.Context, in AdminEditInput) (*SubmissionDTO, error) {
	var dto *SubmissionDTO
	err := u.uow.WithinSubmissionTx(ctx, in.SubmissionID, func(r uow.Repos, s *domainSubmission.Submission) error {
		t, err := r.Templates.GetByID(ctx, s.FormTemplateID)
		if err != nil {
			return err
		}
		merge(s, *t, in.Data)

		if in.Decision != "" && s.Status == domainSubmission.StatusPending && u.decider != nil {
			// Decide saves the submission together with its new status.
			if _, err := u.decider.Decide(ctx, r, s, t, approvalUC.DecideInput{
				ApproverID: in.EditorID,
				Decision:   in.Decision,
				Comment:    in.Comment,
				Signature:  in.Signature,
			}); err != nil {
				return err
			}
		} else {
			if in.Decision != "" {
				u.log.Info("decision ignored for non-pending submission",
					zap.String("submission_id", s.ID), zap.String("status", string(s.Status)))
			}
			if err := r.Submissions.Save(ctx, s); err != nil {
				return err
			}
		}
		dto = toDTO(*t, *s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("submission edited by admin", zap.String("submission_id", in.SubmissionID), zap.String("editor_id", in.EditorID))
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, submissionID string) (*SubmissionDTO, error) {
	s, err := u.repo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	t, err := u.templates.GetByID(ctx, s.FormTemplateID)
	if err != nil {
		return nil, err
	}
	return toDTO(*t, *s), nil
}

func (u *Usecase) ListByTemplate(ctx context.Context, templateID string, f domainSubmission.ListFilter) ([]SubmissionDTO, error) {
	t, err := u.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	list, err := u.repo.ListByTemplate(ctx, templateID, f)
	if err != nil {
		return nil, err
	}
	out := make([]SubmissionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, *toDTO(*t, s))
	}
	return out, nil
}

// ListByUser returns the caller's submissions across templates.
func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]SubmissionDTO, error) {
	list, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cache := make(map[string]*form.Template)
	out := make([]SubmissionDTO, 0, len(list))
	for _, s := range list {
		t, ok := cache[s.FormTemplateID]
		if !ok {
			t, err = u.templates.GetByID(ctx, s.FormTemplateID)
			if err != nil {
				return nil, err
			}
			cache[s.FormTemplateID] = t
		}
		out = append(out, *toDTO(*t, s))
	}
	return out, nil
}

func (u *Usecase) DeleteDraft(ctx context.Context, submissionID, userID string) error {
	err := u.uow.WithinSubmissionTx(ctx, submissionID, func(r uow.Repos, s *domainSubmission.Submission) error {
		if s.UserID != userID {
			return domainSubmission.ErrForbidden
		}
		if s.Status != domainSubmission.StatusDraft {
			return domainSubmission.ErrNotDraft
		}
		return r.Submissions.Delete(ctx, s.ID)
	})
	if err != nil {
		return err
	}
	u.log.Info("draft deleted", zap.String("submission_id", submissionID), zap.String("user_id", userID))
	return nil
}

// merge writes the encoded patch over the stored data, one key at a time.
func merge(s *domainSubmission.Submission, t form.Template, patch map[string]any) {
	if len(patch) == 0 {
		return
	}
	if s.Data == nil {
		s.Data = datatypes.JSONMap{}
	}
	for k, v := range form.EncodeData(t, patch, form.Native) {
		s.Data[k] = v
	}
}

func toDTO(t form.Template, s domainSubmission.Submission) *SubmissionDTO {
	return &SubmissionDTO{
		ID:             s.ID,
		FormTemplateID: s.FormTemplateID,
		UserID:         s.UserID,
		Title:          s.Title,
		Status:         s.Status,
		Signed:         s.Signed,
		Data:           form.DecodeData(t, s.Data),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		SubmittedAt:    s.SubmittedAt,
	}
}
