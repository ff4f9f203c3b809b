package template

import (
	"context"
	"fmt"
	"strings"

	"timesheet-backend/internal/domain/form"
	"timesheet-backend/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	repo    form.Repository
	catalog form.Catalog
	log     *zap.Logger
}

func NewUsecase(r form.Repository, c form.Catalog, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, catalog: c, log: log}
}

func (u *Usecase) Create(ctx context.Context, in CreateTemplateInput) (*form.Template, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", form.ErrTemplateInvalid)
	}
	status := in.Status
	if status == "" {
		status = form.StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", form.ErrTemplateInvalid, status)
	}

	t := &form.Template{
		ID:                  id.NewID32(),
		Name:                strings.TrimSpace(in.Name),
		FormType:            in.FormType,
		Status:              status,
		IsSignatureRequired: in.IsSignatureRequired,
		IsApprovalRequired:  in.IsApprovalRequired,
	}
	for _, gi := range in.Groupings {
		g := form.Grouping{ID: id.NewID32(), TemplateID: t.ID, Title: gi.Title, Order: gi.Order}
		for _, fi := range gi.Fields {
			if _, err := form.KindOf(fi.Type); err != nil {
				return nil, fmt.Errorf("%w: field %q has type %q", form.ErrUnknownType, fi.Label, fi.Type)
			}
			if fi.MinLength != nil && fi.MaxLength != nil && *fi.MinLength > *fi.MaxLength {
				return nil, fmt.Errorf("%w: field %q minLength exceeds maxLength", form.ErrTemplateInvalid, fi.Label)
			}
			f := form.Field{
				ID:          id.NewID32(),
				GroupingID:  g.ID,
				Label:       fi.Label,
				Type:        fi.Type,
				Required:    fi.Required && form.IsInput(fi.Type),
				Order:       fi.Order,
				Placeholder: fi.Placeholder,
				MinLength:   fi.MinLength,
				MaxLength:   fi.MaxLength,
				Multiple:    fi.Multiple,
				Content:     fi.Content,
				Filter:      fi.Filter,
			}
			for _, oi := range fi.Options {
				f.Options = append(f.Options, form.Option{ID: id.NewID32(), FieldID: f.ID, Value: oi.Value})
			}
			g.Fields = append(g.Fields, f)
		}
		t.Groupings = append(t.Groupings, g)
	}

	if err := u.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	u.log.Info("form template created", zap.String("template_id", t.ID), zap.String("name", t.Name))
	sorted := form.Sort(*t)
	return &sorted, nil
}

// Get returns the template with groupings and fields in display order.
func (u *Usecase) Get(ctx context.Context, templateID string) (*form.Template, error) {
	t, err := u.repo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	sorted := form.Sort(*t)
	return &sorted, nil
}

func (u *Usecase) List(ctx context.Context) ([]Summary, error) {
	list, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(list))
	for _, t := range list {
		out = append(out, Summary{
			ID:                  t.ID,
			Name:                t.Name,
			FormType:            t.FormType,
			Status:              t.Status,
			IsSignatureRequired: t.IsSignatureRequired,
			IsApprovalRequired:  t.IsApprovalRequired,
		})
	}
	return out, nil
}

func (u *Usecase) SetStatus(ctx context.Context, templateID string, status form.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q", form.ErrTemplateInvalid, status)
	}
	if err := u.repo.UpdateStatus(ctx, templateID, status); err != nil {
		return err
	}
	u.log.Info("form template status changed", zap.String("template_id", templateID), zap.String("status", string(status)))
	return nil
}

// Options lists the selectable values for one field of a template.
func (u *Usecase) Options(ctx context.Context, templateID, fieldID string) ([]form.Ref, error) {
	t, err := u.repo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	f, err := t.FindField(fieldID)
	if err != nil {
		return nil, err
	}
	return form.OptionsFor(ctx, f, u.catalog)
}
