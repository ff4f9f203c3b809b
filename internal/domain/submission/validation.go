package submission

import (
	"strings"

	"timesheet-backend/internal/domain/form"
)

const signatureField = "_signature"

// ValidationError carries one message per offending field plus a top-level
// notice for the first failure in template order.
type ValidationError struct {
	Fields  map[string]string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validate checks the submit preconditions: every required input field has a
// value and, when the template asks for it, the submitter has signed.
func Validate(t form.Template, data map[string]any, signed bool) *ValidationError {
	errs := form.RequiredErrors(t, data)
	if len(errs) == 0 && (!t.IsSignatureRequired || signed) {
		return nil
	}

	ve := &ValidationError{Fields: make(map[string]string)}
	for _, fe := range errs {
		ve.Fields[fe.FieldID] = fe.Message
	}
	if t.IsSignatureRequired && !signed {
		ve.Fields[signatureField] = "Signature required"
	}

	switch {
	case len(errs) == 1:
		ve.Message = errs[0].Label + ": " + errs[0].Message
	case len(errs) > 1:
		labels := make([]string, 0, len(errs))
		for _, fe := range errs {
			labels = append(labels, fe.Label)
		}
		ve.Message = "Please fill in all required fields: " + strings.Join(labels, ", ")
	default:
		ve.Message = "Signature required"
	}
	return ve
}
