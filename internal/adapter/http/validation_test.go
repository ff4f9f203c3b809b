package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		UserID string `json:"userId" validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{UserID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{UserID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "userId", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestCrewTypeValidation(t *testing.T) {
	type P struct {
		CrewType string `json:"crewType" validate:"crewtype"`
	}
	cv := NewValidator()

	for _, v := range []string{"MECHANIC", "TRUCK_DRIVER", "LABOR", "TASCO"} {
		if err := cv.Validate(P{CrewType: v}); err != nil {
			t.Fatalf("expected %s to pass, got %v", v, err)
		}
	}
	err := cv.Validate(P{CrewType: "labor"})
	if err == nil {
		t.Fatal("expected lower-case crew type to fail")
	}
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "crewType", "MECHANIC") {
		t.Fatalf("missing crewtype message: %+v", fe)
	}
}

func TestFieldTypeValidation(t *testing.T) {
	type P struct {
		Type string `json:"type" validate:"fieldtype"`
	}
	cv := NewValidator()

	for _, v := range []string{"TEXT", "DATE_TIME", "SEARCH_ASSET", "HEADER"} {
		if err := cv.Validate(P{Type: v}); err != nil {
			t.Fatalf("expected %s to pass, got %v", v, err)
		}
	}
	err := cv.Validate(P{Type: "SLIDER"})
	if err == nil {
		t.Fatal("expected SLIDER to fail")
	}
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "type", "not a known field type") {
		t.Fatalf("missing fieldtype message: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name   string `json:"name" validate:"required"`
		Min    int    `json:"min" validate:"gte=10"`
		Max    int    `json:"max" validate:"lte=5"`
		Title  string `json:"title" validate:"max=3"`
		Status string `json:"status" validate:"oneof=DRAFT ACTIVE"`
		Plain  string `validate:"min=2"`
	}
	cv := NewValidator()

	// Intentionally violate all
	err := cv.Validate(P{Min: 9, Max: 6, Title: "long", Status: "GONE", Plain: "x"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	for _, want := range []struct{ field, msg string }{
		{"name", "is required"},
		{"min", "greater than or equal to 10"},
		{"max", "less than or equal to 5"},
		{"title", "at most 3 characters"},
		{"status", "one of DRAFT ACTIVE"},
		{"Plain", "at least 2 characters"}, // no json tag: Go name
	} {
		if !containsFieldMsg(fe, want.field, want.msg) {
			t.Fatalf("missing %q for %s: %+v", want.msg, want.field, fe)
		}
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
