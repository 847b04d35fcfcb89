package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationRule struct {
	Rule func(v *validator.Validate)
}

// Validator is a wrapper around the actual validator
// It sets up the validator and extract the rule error message from the underlying error
type Validator struct {
	validator *validator.Validate
	rules     []ValidationRule
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validator: v}
}

func (v *Validator) Register(rules ...ValidationRule) {
	for _, validationRule := range rules {
		validationRule.Rule(v.validator)
	}
	v.rules = append(v.rules, rules...)
}

// Struct validates s and returns an *ErrValidation describing every failed field.
func (v *Validator) Struct(s any) error {
	if err := v.validator.Struct(s); err != nil {
		return newErrValidation(err)
	}
	return nil
}

// Var validates a single value against tag.
func (v *Validator) Var(field any, tag string) error {
	if err := v.validator.Var(field, tag); err != nil {
		return newErrValidation(err)
	}
	return nil
}
