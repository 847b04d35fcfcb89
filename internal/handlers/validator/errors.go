package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation carries a human readable summary of every failed field.
type ErrValidation struct {
	error
	Fields []string
}

func newErrValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldPath(fe))
		messages = append(messages, describe(fe))
	}

	return &ErrValidation{
		error:  fmt.Errorf("invalid request: %s", strings.Join(messages, "; ")),
		Fields: fields,
	}
}

// fieldPath drops the top level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	if field == "" {
		field = "value"
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "model":
		return fmt.Sprintf("%s %q is not a supported model", field, fe.Value())
	case "unit_system":
		return fmt.Sprintf("%s %q is not a known unit system", field, fe.Value())
	case "report_format":
		return fmt.Sprintf("%s %q is not a supported report format", field, fe.Value())
	case "run_name":
		return fmt.Sprintf("%s contains illegal characters", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
