package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewComputationValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("model", modelValidator),
		},
		{
			Rule: registerFn("unit_system", unitSystemValidator),
		},
		{
			Rule: registerFn("run_name", runNameValidator),
		},
	}
}

func NewReportValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("report_format", reportFormatValidator),
		},
	}
}
