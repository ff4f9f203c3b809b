package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"timesheet-backend/internal/domain/form"
	"timesheet-backend/internal/domain/submission"
	"timesheet-backend/internal/domain/user"

	"go.uber.org/zap"
)

var (
	ErrInvalidRange  = errors.New("export range is invalid")
	ErrInvalidFormat = errors.New("unsupported export format")
)

// exported statuses: drafts never leave the system
var exportedStatuses = []submission.Status{
	submission.StatusPending,
	submission.StatusApproved,
	submission.StatusDenied,
}

type Usecase struct {
	templates form.Repository
	subs      submission.Repository
	users     user.Repository
	log       *zap.Logger
}

func NewUsecase(templates form.Repository, subs submission.Repository, users user.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{templates: templates, subs: subs, users: users, log: log}
}

// Range is an inclusive day range. Zero values leave that side open.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) filter() (submission.ListFilter, error) {
	f := submission.ListFilter{Statuses: exportedStatuses}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return f, ErrInvalidRange
	}
	if !r.From.IsZero() {
		from := r.From
		f.From = &from
	}
	if !r.To.IsZero() {
		to := r.To.AddDate(0, 0, 1)
		f.To = &to
	}
	return f, nil
}

// Table builds the on-screen grid for a template.
func (u *Usecase) Table(ctx context.Context, templateID string, r Range) (*Table, error) {
	_, tbl, err := u.project(ctx, templateID, r)
	if err != nil {
		return nil, err
	}
	return &tbl, nil
}

type Result struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

func (u *Usecase) Export(ctx context.Context, templateID string, r Range, format Format) (*Result, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	t, tbl, err := u.project(ctx, templateID, r)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := write(&buf, format, t.Name, tbl); err != nil {
		return nil, err
	}
	res := &Result{
		Filename:    Filename(t.Name, r.From, r.To, format),
		ContentType: format.ContentType(),
		Body:        buf.Bytes(),
		Rows:        len(tbl.Rows),
	}
	u.log.Info("submissions exported",
		zap.String("template_id", templateID),
		zap.String("format", string(format)),
		zap.Int("rows", res.Rows))
	return res, nil
}

func write(w io.Writer, format Format, sheet string, tbl Table) error {
	if format == FormatXLSX {
		return WriteXLSX(w, sheet, tbl)
	}
	return WriteCSV(w, tbl)
}

func (u *Usecase) project(ctx context.Context, templateID string, r Range) (*form.Template, Table, error) {
	f, err := r.filter()
	if err != nil {
		return nil, Table{}, err
	}
	t, err := u.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, Table{}, err
	}
	subs, err := u.subs.ListByTemplate(ctx, templateID, f)
	if err != nil {
		return nil, Table{}, err
	}
	return t, Project(*t, subs, u.names(ctx, subs)), nil
}

// names resolves submitter display names. Lookup failures only cost the
// pretty name, so they are logged and the id is shown instead.
func (u *Usecase) names(ctx context.Context, subs []submission.Submission) map[string]string {
	seen := make(map[string]struct{})
	var ids []string
	for _, s := range subs {
		if _, ok := seen[s.UserID]; !ok {
			seen[s.UserID] = struct{}{}
			ids = append(ids, s.UserID)
		}
	}
	out := make(map[string]string, len(ids))
	if len(ids) == 0 || u.users == nil {
		return out
	}
	users, err := u.users.GetByIDs(ctx, ids)
	if err != nil {
		u.log.Warn("submitter lookup failed", zap.Error(err))
		return out
	}
	for _, usr := range users {
		out[usr.ID] = usr.FullName()
	}
	return out
}
