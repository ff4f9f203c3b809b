package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	domainApproval "timesheet-backend/internal/domain/approval"
	"timesheet-backend/internal/domain/form"
	domainSubmission "timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/domain/uow"
	"timesheet-backend/internal/domain/user"
	approvalUC "timesheet-backend/internal/usecase/approval"
	"timesheet-backend/internal/testutil/approvalmock"
	"timesheet-backend/internal/testutil/submissionmock"
	"timesheet-backend/internal/testutil/templatemock"
	"timesheet-backend/internal/testutil/usermock"
	"timesheet-backend/internal/testutil/uowmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func timesheetTemplate() form.Template {
	return form.Template{
		ID:                  "T1",
		Name:                "Daily Timesheet",
		Status:              form.StatusActive,
		IsSignatureRequired: true,
		IsApprovalRequired:  true,
		Groupings: []form.Grouping{
			{ID: "g2", Order: 2, Fields: []form.Field{
				{ID: "notes", Label: "Notes", Type: form.TypeTextarea, Order: 1},
			}},
			{ID: "g1", Order: 1, Fields: []form.Field{
				{ID: "intro", Label: "Intro", Type: form.TypeHeader, Order: 0},
				{ID: "hours", Label: "Hours", Type: form.TypeNumber, Order: 1, Required: true},
				{ID: "date", Label: "Work Date", Type: form.TypeDate, Order: 2, Required: true},
				{ID: "safety", Label: "Safety Check", Type: form.TypeCheckbox, Order: 3},
			}},
		},
	}
}

// memSubs is a submissionmock backed by a map, so tx rollbacks can be
// simulated by snapshotting.
type memSubs struct {
	rows map[string]domainSubmission.Submission
	repo *submissionmock.Repo
}

func newMemSubs(seed ...domainSubmission.Submission) *memSubs {
	m := &memSubs{rows: map[string]domainSubmission.Submission{}}
	for _, s := range seed {
		m.rows[s.ID] = cloneSub(s)
	}
	get := func(_ context.Context, id string) (*domainSubmission.Submission, error) {
		s, ok := m.rows[id]
		if !ok {
			return nil, domainSubmission.ErrNotFound
		}
		cp := cloneSub(s)
		return &cp, nil
	}
	m.repo = &submissionmock.Repo{
		CreateFn: func(_ context.Context, s *domainSubmission.Submission) error {
			m.rows[s.ID] = cloneSub(*s)
			return nil
		},
		GetByIDFn:          get,
		GetByIDForUpdateFn: get,
		SaveFn: func(_ context.Context, s *domainSubmission.Submission) error {
			m.rows[s.ID] = cloneSub(*s)
			return nil
		},
		DeleteFn: func(_ context.Context, id string) error {
			delete(m.rows, id)
			return nil
		},
		ListByTemplateFn: func(_ context.Context, templateID string, f domainSubmission.ListFilter) ([]domainSubmission.Submission, error) {
			var out []domainSubmission.Submission
			for _, s := range m.rows {
				if s.FormTemplateID == templateID {
					out = append(out, s)
				}
			}
			return out, nil
		},
		ListByUserFn: func(_ context.Context, userID string) ([]domainSubmission.Submission, error) {
			var out []domainSubmission.Submission
			for _, s := range m.rows {
				if s.UserID == userID {
					out = append(out, s)
				}
			}
			return out, nil
		},
	}
	return m
}

func cloneSub(s domainSubmission.Submission) domainSubmission.Submission {
	data := datatypes.JSONMap{}
	for k, v := range s.Data {
		data[k] = v
	}
	s.Data = data
	return s
}

// txUoW runs fn against repos and restores the submission rows when fn fails.
func txUoW(m *memSubs, repos uow.Repos) *uowmock.UoW {
	pass := uowmock.Passthrough(repos)
	return uowmock.New().WithWithinSubmissionTx(func(ctx context.Context, id string, fn func(uow.Repos, *domainSubmission.Submission) error) error {
		snapshot := make(map[string]domainSubmission.Submission, len(m.rows))
		for k, v := range m.rows {
			snapshot[k] = cloneSub(v)
		}
		err := pass.WithinSubmissionTx(ctx, id, fn)
		if err != nil {
			m.rows = snapshot
		}
		return err
	})
}

type harness struct {
	uc        *Usecase
	subs      *memSubs
	approvals []*domainApproval.Approval
}

func newHarness(t *testing.T, tmpl form.Template, seed ...domainSubmission.Submission) *harness {
	t.Helper()
	h := &harness{subs: newMemSubs(seed...)}
	apprs := &approvalmock.Repo{CreateFn: func(_ context.Context, a *domainApproval.Approval) error {
		h.approvals = append(h.approvals, a)
		return nil
	}}
	templates := templatemock.Fixed(tmpl)
	repos := uow.Repos{
		Templates:   templates,
		Submissions: h.subs.repo,
		Approvals:   apprs,
		Users:       usermock.Static(user.User{ID: "ADM", FirstName: "Ada", LastName: "Admin"}),
	}
	tx := txUoW(h.subs, repos)
	decider := approvalUC.NewUsecase(h.subs.repo, apprs, tx, nil)
	h.uc = NewUsecase(templates, h.subs.repo, tx, decider, nil)
	h.uc.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

func draft(id, userID string, data datatypes.JSONMap) domainSubmission.Submission {
	return domainSubmission.Submission{ID: id, FormTemplateID: "T1", UserID: userID, Status: domainSubmission.StatusDraft, Data: data}
}

func TestCreateDraft(t *testing.T) {
	h := newHarness(t, timesheetTemplate())

	dto, err := h.uc.CreateDraft(context.Background(), CreateDraftInput{
		TemplateID: "T1", UserID: "U1", Title: " Week 22 ",
		Data: map[string]any{"hours": "7.5"},
	})
	require.NoError(t, err)
	assert.Equal(t, domainSubmission.StatusDraft, dto.Status)
	assert.Equal(t, "Week 22", dto.Title)
	assert.Equal(t, 7.5, dto.Data["hours"])
	assert.Equal(t, false, dto.Data["safety"], "missing fields decode to their default")
	assert.NotContains(t, dto.Data, "intro", "presentational fields carry no value")
	assert.Contains(t, h.subs.rows, dto.ID)
}

func TestCreateDraft_InactiveTemplate(t *testing.T) {
	tmpl := timesheetTemplate()
	tmpl.Status = form.StatusArchived
	h := newHarness(t, tmpl)

	_, err := h.uc.CreateDraft(context.Background(), CreateDraftInput{TemplateID: "T1", UserID: "U1"})
	assert.ErrorIs(t, err, form.ErrNotActive)
	assert.Empty(t, h.subs.rows)
}

func TestSaveDraft_MergesKeys(t *testing.T) {
	h := newHarness(t, timesheetTemplate(), draft("S1", "U1", datatypes.JSONMap{"hours": 8.0, "notes": "first"}))

	title := "Renamed"
	dto, err := h.uc.SaveDraft(context.Background(), SaveDraftInput{
		SubmissionID: "S1", UserID: "U1", Title: &title,
		Data: map[string]any{"notes": "second", "safety": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, dto.Data["hours"], "untouched keys survive")
	assert.Equal(t, "second", dto.Data["notes"])
	assert.Equal(t, true, dto.Data["safety"])
	assert.Equal(t, "Renamed", h.subs.rows["S1"].Title)
}

func TestSaveDraft_Guards(t *testing.T) {
	pending := draft("S2", "U1", nil)
	pending.Status = domainSubmission.StatusPending
	h := newHarness(t, timesheetTemplate(), draft("S1", "U1", nil), pending)
	ctx := context.Background()

	_, err := h.uc.SaveDraft(ctx, SaveDraftInput{SubmissionID: "S1", UserID: "U2"})
	assert.ErrorIs(t, err, domainSubmission.ErrForbidden)

	_, err = h.uc.SaveDraft(ctx, SaveDraftInput{SubmissionID: "S2", UserID: "U1"})
	assert.ErrorIs(t, err, domainSubmission.ErrNotDraft)

	_, err = h.uc.SaveDraft(ctx, SaveDraftInput{SubmissionID: "S9", UserID: "U1"})
	assert.ErrorIs(t, err, domainSubmission.ErrNotFound)
}

func TestSubmit_ValidationFailureLeavesDraft(t *testing.T) {
	h := newHarness(t, timesheetTemplate(), draft("S1", "U1", datatypes.JSONMap{"notes": "kept"}))

	_, err := h.uc.Submit(context.Background(), SubmitInput{
		SubmissionID: "S1", UserID: "U1",
		Data:   map[string]any{"notes": "changed"},
		Signed: false,
	})
	var ve *domainSubmission.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, domainSubmission.ErrValidation)
	assert.Equal(t, "Please fill in all required fields: Hours, Work Date", ve.Message)
	assert.Equal(t, "Required", ve.Fields["hours"])
	assert.Equal(t, "Required", ve.Fields["date"])
	assert.Contains(t, ve.Fields, "_signature")

	stored := h.subs.rows["S1"]
	assert.Equal(t, domainSubmission.StatusDraft, stored.Status)
	assert.Equal(t, "kept", stored.Data["notes"], "failed submit rolls back the merged patch")
}

func TestSubmit_SignatureOnly(t *testing.T) {
	h := newHarness(t, timesheetTemplate(), draft("S1", "U1", datatypes.JSONMap{"hours": 8.0, "date": "2026-05-29"}))

	_, err := h.uc.Submit(context.Background(), SubmitInput{SubmissionID: "S1", UserID: "U1"})
	var ve *domainSubmission.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Signature required", ve.Message)
}

func TestSubmit_StaysPendingWithoutApproval(t *testing.T) {
	tmpl := timesheetTemplate()
	tmpl.IsApprovalRequired = false
	tmpl.IsSignatureRequired = false
	h := newHarness(t, tmpl, draft("S1", "U1", datatypes.JSONMap{"hours": 8.0}))

	dto, err := h.uc.Submit(context.Background(), SubmitInput{
		SubmissionID: "S1", UserID: "U1",
		Data: map[string]any{"date": "2026-05-29"},
	})
	require.NoError(t, err)
	assert.Equal(t, domainSubmission.StatusPending, dto.Status)
	require.NotNil(t, dto.SubmittedAt)
	assert.True(t, dto.SubmittedAt.Equal(h.uc.now()))
	assert.Empty(t, h.approvals, "submit never records approvals")
}

func TestSubmit_Guards(t *testing.T) {
	pending := draft("S2", "U1", nil)
	pending.Status = domainSubmission.StatusPending
	h := newHarness(t, timesheetTemplate(), draft("S1", "U1", nil), pending)

	_, err := h.uc.Submit(context.Background(), SubmitInput{SubmissionID: "S1", UserID: "U2"})
	assert.ErrorIs(t, err, domainSubmission.ErrForbidden)

	_, err = h.uc.Submit(context.Background(), SubmitInput{SubmissionID: "S2", UserID: "U1", Signed: true})
	assert.ErrorIs(t, err, domainSubmission.ErrInvalidTransition)
}

func TestAdminEdit(t *testing.T) {
	pending := draft("S1", "U1", datatypes.JSONMap{"hours": 8.0})
	pending.Status = domainSubmission.StatusPending
	approved := draft("S2", "U1", datatypes.JSONMap{"hours": 8.0})
	approved.Status = domainSubmission.StatusApproved

	t.Run("pending with decision goes through approval rules", func(t *testing.T) {
		h := newHarness(t, timesheetTemplate(), pending)
		_, err := h.uc.AdminEdit(context.Background(), AdminEditInput{
			SubmissionID: "S1", EditorID: "ADM",
			Data:     map[string]any{"hours": 9.0},
			Decision: domainApproval.DecisionApproved,
			Comment:  "fixed hours",
		})
		assert.ErrorIs(t, err, domainApproval.ErrSignatureRequired)
		assert.Equal(t, 8.0, h.subs.rows["S1"].Data["hours"], "rejected decision rolls back the edit")
		assert.Empty(t, h.approvals)
	})

	t.Run("pending approve with signature", func(t *testing.T) {
		h := newHarness(t, timesheetTemplate(), pending)
		dto, err := h.uc.AdminEdit(context.Background(), AdminEditInput{
			SubmissionID: "S1", EditorID: "ADM",
			Data:      map[string]any{"hours": 9.0},
			Decision:  domainApproval.DecisionApproved,
			Comment:   "fixed hours",
			Signature: "sig.png",
		})
		require.NoError(t, err)
		assert.Equal(t, domainSubmission.StatusApproved, dto.Status)
		assert.Equal(t, 9.0, h.subs.rows["S1"].Data["hours"])
		require.Len(t, h.approvals, 1)
		assert.Equal(t, "Ada Admin", h.approvals[0].Approver)
	})

	t.Run("terminal keeps status", func(t *testing.T) {
		h := newHarness(t, timesheetTemplate(), approved)
		dto, err := h.uc.AdminEdit(context.Background(), AdminEditInput{
			SubmissionID: "S2", EditorID: "ADM",
			Data:     map[string]any{"hours": 10.0},
			Decision: domainApproval.DecisionDenied,
			Comment:  "late change",
		})
		require.NoError(t, err)
		assert.Equal(t, domainSubmission.StatusApproved, dto.Status)
		assert.Equal(t, 10.0, h.subs.rows["S2"].Data["hours"])
		assert.Empty(t, h.approvals)
	})
}

func TestDeleteDraft(t *testing.T) {
	pending := draft("S2", "U1", nil)
	pending.Status = domainSubmission.StatusPending
	h := newHarness(t, timesheetTemplate(), draft("S1", "U1", nil), pending)
	ctx := context.Background()

	assert.ErrorIs(t, h.uc.DeleteDraft(ctx, "S1", "U2"), domainSubmission.ErrForbidden)
	assert.ErrorIs(t, h.uc.DeleteDraft(ctx, "S2", "U1"), domainSubmission.ErrNotDraft)
	require.NoError(t, h.uc.DeleteDraft(ctx, "S1", "U1"))
	assert.NotContains(t, h.subs.rows, "S1")
}

func TestGet_DecodesLegacyLabelKeys(t *testing.T) {
	h := newHarness(t, timesheetTemplate(), draft("S1", "U1", datatypes.JSONMap{
		"Hours":        "6",
		"Safety Check": "true",
		"Work Date":    "2026-05-29",
	}))

	dto, err := h.uc.Get(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, 6.0, dto.Data["hours"])
	assert.Equal(t, true, dto.Data["safety"])
	d, ok := dto.Data["date"].(*time.Time)
	require.True(t, ok)
	require.NotNil(t, d)
	assert.Equal(t, "2026-05-29", d.Format("2006-01-02"))

	_, err = h.uc.Get(context.Background(), "S9")
	assert.True(t, errors.Is(err, domainSubmission.ErrNotFound))
}

func TestListByUserAndTemplate(t *testing.T) {
	other := draft("S3", "U2", nil)
	h := newHarness(t, timesheetTemplate(), draft("S1", "U1", nil), draft("S2", "U1", nil), other)
	ctx := context.Background()

	mine, err := h.uc.ListByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := h.uc.ListByTemplate(ctx, "T1", domainSubmission.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = h.uc.ListByTemplate(ctx, "T9", domainSubmission.ListFilter{})
	assert.ErrorIs(t, err, form.ErrNotFound)
}
