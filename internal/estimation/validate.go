package estimation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("poisson", PoissonValidator)
	return v
}

// PoissonValidator accepts Poisson's ratios in the open interval (-1, 0.5).
func PoissonValidator(fl validator.FieldLevel) bool {
	nu := fl.Field().Float()
	return nu > -1 && nu < 0.5
}

// Validate rejects inputs outside their physical domain. It runs once at the Engine entry
// points; solvers assume validated input.
func Validate(in Input) error {
	if field, ok := firstNonFinite(in); ok {
		return &InputError{Field: field, Reason: "must be finite"}
	}

	err := inputValidator.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fe := verrs[0]
	return &InputError{Field: fe.Field(), Reason: describeTag(fe.Tag(), fe.Param())}
}

func describeTag(tag, param string) string {
	switch tag {
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "poisson":
		return "must be in (-1, 0.5)"
	default:
		return "failed " + tag
	}
}

func firstNonFinite(in Input) (string, bool) {
	fields := []struct {
		name  string
		value float64
	}{
		{"youngModulus", in.YoungModulus},
		{"poissonRatio", in.PoissonRatio},
		{"sigmaMin", in.SigmaMin},
		{"leakoffCoefficient", in.LeakoffCoefficient},
		{"viscosity", in.Viscosity},
		{"rate", in.Rate},
		{"height", in.Height},
		{"toughness", in.Toughness},
		{"time", in.Time},
		{"pressureLimit", in.PressureLimit},
		{"depth", in.Depth},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return f.name, true
		}
	}
	return "", false
}
