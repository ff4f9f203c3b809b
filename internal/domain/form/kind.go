package form

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type FieldType string

const (
	TypeText         FieldType = "TEXT"
	TypeTextarea     FieldType = "TEXTAREA"
	TypeNumber       FieldType = "NUMBER"
	TypeDate         FieldType = "DATE"
	TypeDateTime     FieldType = "DATE_TIME"
	TypeTime         FieldType = "TIME"
	TypeDropdown     FieldType = "DROPDOWN"
	TypeRadio        FieldType = "RADIO"
	TypeCheckbox     FieldType = "CHECKBOX"
	TypeMultiselect  FieldType = "MULTISELECT"
	TypeSearchPerson FieldType = "SEARCH_PERSON"
	TypeSearchAsset  FieldType = "SEARCH_ASSET"
	TypeHeader       FieldType = "HEADER"
	TypeParagraph    FieldType = "PARAGRAPH"
)

// FieldTypes lists every supported field type.
var FieldTypes = []FieldType{
	TypeText, TypeTextarea, TypeNumber, TypeDate, TypeDateTime, TypeTime,
	TypeDropdown, TypeRadio, TypeCheckbox, TypeMultiselect,
	TypeSearchPerson, TypeSearchAsset, TypeHeader, TypeParagraph,
}

// Ref is the stored shape of a SEARCH_PERSON / SEARCH_ASSET selection.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// EncodeMode selects the transport representation produced by Encode.
type EncodeMode int

const (
	// Native keeps booleans, numbers, arrays and objects structured (JSON columns).
	Native EncodeMode = iota
	// Legacy renders every value as a string for string-keyed storages.
	Legacy
)

type OptionSource int

const (
	SourceNone OptionSource = iota
	SourceFieldOptions
	SourcePeople
	SourceAssets
)

// Kind is the behaviour attached to one field type.
type Kind interface {
	Type() FieldType
	// Input is false for presentational types that take no value.
	Input() bool
	Default(f Field) any
	Decode(raw any, f Field) any
	Encode(v any, f Field, mode EncodeMode) any
	// Empty reports whether a raw stored value counts as missing for the required check.
	Empty(raw any, f Field) bool
	// Cell renders a decoded value for tables and exports.
	Cell(v any, f Field) string
	Source() OptionSource
}

var kinds = map[FieldType]Kind{
	TypeText:         textKind{t: TypeText, src: SourceNone},
	TypeTextarea:     textKind{t: TypeTextarea, src: SourceNone},
	TypeDropdown:     textKind{t: TypeDropdown, src: SourceFieldOptions},
	TypeRadio:        textKind{t: TypeRadio, src: SourceFieldOptions},
	TypeTime:         timeKind{},
	TypeNumber:       numberKind{},
	TypeCheckbox:     checkboxKind{},
	TypeDate:         dateKind{t: TypeDate},
	TypeDateTime:     dateKind{t: TypeDateTime},
	TypeMultiselect:  multiselectKind{},
	TypeSearchPerson: searchKind{t: TypeSearchPerson},
	TypeSearchAsset:  searchKind{t: TypeSearchAsset},
	TypeHeader:       staticKind{t: TypeHeader},
	TypeParagraph:    staticKind{t: TypeParagraph},
}

// KindOf returns the registered behaviour for t.
func KindOf(t FieldType) (Kind, error) {
	k, ok := kinds[t]
	if !ok {
		return nil, ErrUnknownType
	}
	return k, nil
}

// IsInput reports whether fields of type t carry a value. Unknown types do not.
func IsInput(t FieldType) bool {
	k, err := KindOf(t)
	return err == nil && k.Input()
}

// ---- text-like ----

type textKind struct {
	t   FieldType
	src OptionSource
}

func (k textKind) Type() FieldType { return k.t }
func (textKind) Input() bool { return true }
func (textKind) Default(Field) any { return "" }
func (k textKind) Source() OptionSource { return k.src }
func (textKind) Decode(raw any, _ Field) any { return stringify(raw) }
func (textKind) Empty(raw any, _ Field) bool { return stringify(raw) == "" }
func (textKind) Cell(v any, _ Field) string { return stringify(v) }

func (textKind) Encode(v any, _ Field, _ EncodeMode) any { return stringify(v) }

// timeKind stores "15:04" wall clock strings and renders them as "3:04 PM".
type timeKind struct{ textKind }

func (timeKind) Type() FieldType { return TypeTime }
func (timeKind) Source() OptionSource { return SourceNone }

func (timeKind) Cell(v any, _ Field) string {
	s := stringify(v)
	for _, layout := range []string{"15:04", "15:04:05", time.Kitchen} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return s
}

// ---- number ----

type numberKind struct{}

func (numberKind) Type() FieldType { return TypeNumber }
func (numberKind) Input() bool { return true }
func (numberKind) Default(Field) any { return float64(0) }
func (numberKind) Source() OptionSource { return SourceNone }

func (numberKind) Decode(raw any, _ Field) any {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return float64(0)
}

func (k numberKind) Encode(v any, f Field, mode EncodeMode) any {
	n := k.Decode(v, f).(float64)
	if mode == Legacy {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return n
}

func (numberKind) Empty(raw any, _ Field) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

func (k numberKind) Cell(v any, f Field) string {
	return strconv.FormatFloat(k.Decode(v, f).(float64), 'f', -1, 64)
}

// ---- checkbox ----

type checkboxKind struct{}

func (checkboxKind) Type() FieldType { return TypeCheckbox }
func (checkboxKind) Input() bool { return true }
func (checkboxKind) Default(Field) any { return false }
func (checkboxKind) Source() OptionSource { return SourceNone }

func (checkboxKind) Decode(raw any, _ Field) any {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return false
}

func (k checkboxKind) Encode(v any, f Field, mode EncodeMode) any {
	b := k.Decode(v, f).(bool)
	if mode == Legacy {
		return strconv.FormatBool(b)
	}
	return b
}

// A required checkbox must be checked.
// Empty is true only when nothing was stored; an unticked box is an answer.
func (checkboxKind) Empty(raw any, _ Field) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

func (k checkboxKind) Cell(v any, f Field) string {
	b := k.Decode(v, f).(bool)
	if IsSignatureLabel(f.Label) {
		if b {
			return "Signed"
		}
		return "Not Signed"
	}
	if b {
		return "Yes"
	}
	return "No"
}

// IsSignatureLabel matches the literal "signature" checkbox used as a submitter signature.
func IsSignatureLabel(label string) bool { return label == "signature" || label == "Signature" }

// ---- date / date-time ----

const (
	dateLayout     = "2006-01-02"
	dateCellLayout = "01/02/2006"
	timeCellLayout = "3:04 PM"
)

type dateKind struct{ t FieldType }

func (k dateKind) Type() FieldType { return k.t }
func (dateKind) Input() bool { return true }
func (dateKind) Default(Field) any { return (*time.Time)(nil) }
func (dateKind) Source() OptionSource { return SourceNone }

func (dateKind) Decode(raw any, _ Field) any {
	switch v := raw.(type) {
	case *time.Time:
		if v == nil {
			return (*time.Time)(nil)
		}
		t := *v
		return &t
	case time.Time:
		return &v
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range []string{time.RFC3339Nano, dateLayout, "2006-01-02T15:04"} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	}
	return (*time.Time)(nil)
}

func (k dateKind) Encode(v any, f Field, _ EncodeMode) any {
	t := k.Decode(v, f).(*time.Time)
	if t == nil {
		return nil
	}
	if k.t == TypeDate {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339Nano)
}

func (k dateKind) Empty(raw any, f Field) bool { return k.Decode(raw, f).(*time.Time) == nil }

func (k dateKind) Cell(v any, f Field) string {
	t := k.Decode(v, f).(*time.Time)
	if t == nil {
		return ""
	}
	if k.t == TypeDate {
		return t.Format(dateCellLayout)
	}
	return t.Format(dateCellLayout + " " + timeCellLayout)
}

// ---- multiselect ----

type multiselectKind struct{}

func (multiselectKind) Type() FieldType { return TypeMultiselect }
func (multiselectKind) Input() bool { return true }
func (multiselectKind) Default(Field) any { return []string{} }
func (multiselectKind) Source() OptionSource { return SourceFieldOptions }

func (multiselectKind) Decode(raw any, _ Field) any {
	out := []string{}
	switch v := raw.(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			if s := stringify(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return out
		}
		var list []string
		if strings.HasPrefix(s, "[") && json.Unmarshal([]byte(s), &list) == nil {
			return append(out, list...)
		}
		out = append(out, s)
	}
	return out
}

func (k multiselectKind) Encode(v any, f Field, mode EncodeMode) any {
	list := k.Decode(v, f).([]string)
	if mode == Legacy {
		b, _ := json.Marshal(list)
		return string(b)
	}
	return list
}

func (k multiselectKind) Empty(raw any, f Field) bool { return len(k.Decode(raw, f).([]string)) == 0 }

func (k multiselectKind) Cell(v any, f Field) string {
	return strings.Join(k.Decode(v, f).([]string), ", ")
}

// ---- search person / asset ----

type searchKind struct{ t FieldType }

func (k searchKind) Type() FieldType { return k.t }
func (searchKind) Input() bool { return true }

func (k searchKind) Source() OptionSource {
	if k.t == TypeSearchPerson {
		return SourcePeople
	}
	return SourceAssets
}

// Default is "" for single selections and an empty list when the field allows multiple.
func (searchKind) Default(f Field) any {
	if f.Multiple {
		return []Ref{}
	}
	return ""
}

func (k searchKind) Decode(raw any, f Field) any {
	refs := k.refs(raw, f)
	if f.Multiple {
		return refs
	}
	if len(refs) == 0 {
		return ""
	}
	return refs[0]
}

func (k searchKind) refs(raw any, f Field) []Ref {
	out := []Ref{}
	add := func(r Ref, ok bool) {
		if !ok {
			return
		}
		if k.t == TypeSearchAsset && r.Type == "" {
			r.Type = f.FilterValue()
		}
		out = append(out, r)
	}
	switch v := raw.(type) {
	case Ref:
		add(v, true)
	case []Ref:
		for _, r := range v {
			add(r, true)
		}
	case map[string]any:
		add(refFromMap(v))
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				add(refFromMap(m))
			}
		}
	case string:
		s := strings.TrimSpace(v)
		switch {
		case s == "":
		case strings.HasPrefix(s, "["):
			var list []Ref
			if json.Unmarshal([]byte(s), &list) == nil {
				for _, r := range list {
					add(r, true)
				}
			}
		case strings.HasPrefix(s, "{"):
			var r Ref
			if json.Unmarshal([]byte(s), &r) == nil {
				add(r, true)
			}
		default:
			add(Ref{Name: s}, true)
		}
	}
	return out
}

func refFromMap(m map[string]any) (Ref, bool) {
	r := Ref{ID: stringify(m["id"]), Name: stringify(m["name"]), Type: stringify(m["type"])}
	return r, r.ID != "" || r.Name != ""
}

func (k searchKind) Encode(v any, f Field, mode EncodeMode) any {
	decoded := k.Decode(v, f)
	if s, ok := decoded.(string); ok {
		return s
	}
	if mode == Legacy {
		b, _ := json.Marshal(decoded)
		return string(b)
	}
	return decoded
}

func (k searchKind) Empty(raw any, f Field) bool { return len(k.refs(raw, f)) == 0 }

func (k searchKind) Cell(v any, f Field) string {
	refs := k.refs(v, f)
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// ---- header / paragraph ----

type staticKind struct{ t FieldType }

func (k staticKind) Type() FieldType { return k.t }
func (staticKind) Input() bool { return false }
func (staticKind) Default(Field) any { return nil }
func (staticKind) Decode(any, Field) any { return nil }
func (staticKind) Encode(any, Field, EncodeMode) any { return nil }
func (staticKind) Empty(any, Field) bool { return false }
func (staticKind) Cell(any, Field) string { return "" }
func (staticKind) Source() OptionSource { return SourceNone }

// stringify renders arbitrary decoded JSON without leaking Go formatting.
func stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if name, ok := m["name"]; ok {
					parts = append(parts, stringify(name))
					continue
				}
			}
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	case Ref:
		return v.Name
	case []Ref:
		names := make([]string, 0, len(v))
		for _, r := range v {
			names = append(names, r.Name)
		}
		return strings.Join(names, ", ")
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return string(b)
}
