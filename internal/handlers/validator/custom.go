package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/units"
)

var runNameValidRegex = regexp.MustCompile(`^[a-zA-Z0-9+\-_. ]+$`)

func runNameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return runNameValidRegex.MatchString(val)
}

func modelValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := estimation.ParseModel(val)
	return err == nil
}

func unitSystemValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := units.ParseSystem(val)
	return err == nil
}

func reportFormatValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	switch service.ReportFormat(val) {
	case service.ReportFormatCSV, service.ReportFormatHTML, service.ReportFormatXLSX:
		return true
	default:
		return false
	}
}
