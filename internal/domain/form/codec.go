package form

import (
	"context"
	"fmt"
)

// Decode turns a stored raw value into the typed value for f.
// nil and unparseable input decode to the type's default.
func Decode(raw any, f Field) any {
	k, err := KindOf(f.Type)
	if err != nil {
		return raw
	}
	if raw == nil {
		return k.Default(f)
	}
	return k.Decode(raw, f)
}

// Encode turns a typed value into its transport representation.
func Encode(v any, f Field, mode EncodeMode) any {
	k, err := KindOf(f.Type)
	if err != nil {
		return v
	}
	return k.Encode(v, f, mode)
}

// DefaultValue is the empty value an input for f starts with.
func DefaultValue(f Field) any {
	k, err := KindOf(f.Type)
	if err != nil {
		return nil
	}
	return k.Default(f)
}

// Cell renders the stored raw value of f for tables and exports.
func Cell(raw any, f Field) string {
	k, err := KindOf(f.Type)
	if err != nil || !k.Input() {
		return ""
	}
	return k.Cell(Decode(raw, f), f)
}

// DecodeData decodes every input field of t from data, keyed by field id.
func DecodeData(t Template, data map[string]any) map[string]any {
	out := make(map[string]any)
	for _, f := range t.InputFields() {
		raw, _ := ResolveLegacyKey(data, f)
		out[f.ID] = Decode(raw, f)
	}
	return out
}

// EncodeData encodes values keyed by field id. Keys that do not name an input
// field of t are passed through untouched.
func EncodeData(t Template, values map[string]any, mode EncodeMode) map[string]any {
	byID := make(map[string]Field)
	for _, f := range t.InputFields() {
		byID[f.ID] = f
	}
	out := make(map[string]any, len(values))
	for key, v := range values {
		if f, ok := byID[key]; ok {
			out[key] = Encode(v, f, mode)
			continue
		}
		out[key] = v
	}
	return out
}

type FieldError struct {
	FieldID string `json:"fieldId"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// RequiredErrors lists, in template order, every required input field whose
// stored value is empty.
func RequiredErrors(t Template, data map[string]any) []FieldError {
	var out []FieldError
	for _, f := range t.InputFields() {
		if !f.Required {
			continue
		}
		k, err := KindOf(f.Type)
		if err != nil {
			continue
		}
		raw, _ := ResolveLegacyKey(data, f)
		if k.Empty(raw, f) {
			out = append(out, FieldError{FieldID: f.ID, Label: f.Label, Message: "Required"})
		}
	}
	return out
}

// Catalog supplies option lists that live outside the template.
type Catalog interface {
	People(ctx context.Context) ([]Ref, error)
	Assets(ctx context.Context, filter string) ([]Ref, error)
}

// OptionsFor returns the selectable options for f.
func OptionsFor(ctx context.Context, f Field, c Catalog) ([]Ref, error) {
	k, err := KindOf(f.Type)
	if err != nil {
		return nil, err
	}
	switch k.Source() {
	case SourceFieldOptions:
		out := make([]Ref, 0, len(f.Options))
		for _, o := range f.Options {
			out = append(out, Ref{ID: o.ID, Name: o.Value})
		}
		return out, nil
	case SourcePeople:
		if c == nil {
			return []Ref{}, nil
		}
		return c.People(ctx)
	case SourceAssets:
		if c == nil {
			return []Ref{}, nil
		}
		refs, err := c.Assets(ctx, f.FilterValue())
		if err != nil {
			return nil, fmt.Errorf("asset options for %q: %w", f.FilterValue(), err)
		}
		return refs, nil
	}
	return []Ref{}, nil
}
