package estimation

import (
	"fmt"
	"strings"
)

// Model identifies one of the analytical propagation models.
type Model string

const (
	ModelPKN    Model = "PKN"
	ModelKGD    Model = "KGD"
	ModelRadial Model = "Radial"
)

// Models lists the supported variants in their canonical order.
var Models = []Model{ModelPKN, ModelKGD, ModelRadial}

func (m Model) String() string { return string(m) }

// ParseModel accepts a model name case-insensitively ("pkn", "KGD", "radial", "penny").
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pkn":
		return ModelPKN, nil
	case "kgd":
		return ModelKGD, nil
	case "radial", "penny":
		return ModelRadial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedModel, s)
	}
}

// Regime labels which mechanism dominates propagation.
type Regime string

const (
	RegimeToughness Regime = "Toughness"
	RegimeViscosity Regime = "Viscosity"
)

// Input is the physical parameter set of one computation.
type Input struct {
	YoungModulus       float64 `json:"youngModulus" validate:"gt=0"`
	PoissonRatio       float64 `json:"poissonRatio" validate:"poisson"`
	SigmaMin           float64 `json:"sigmaMin" validate:"gte=0"`
	LeakoffCoefficient float64 `json:"leakoffCoefficient" validate:"gt=0"`
	Viscosity          float64 `json:"viscosity" validate:"gt=0"`
	Rate               float64 `json:"rate" validate:"gt=0"`
	Height             float64 `json:"height" validate:"gt=0"`
	Toughness          float64 `json:"toughness" validate:"gt=0"`
	Time               float64 `json:"time" validate:"gt=0"`
	// PressureLimit is carried for reporting only; no solver reads it.
	PressureLimit float64 `json:"pressureLimit" validate:"gte=0"`
	Depth         float64 `json:"depth" validate:"gte=0"`
}

// State is the closed-form solution of one solver at one instant.
type State struct {
	Extent            float64
	NoLeakoffExtent   float64
	HighLeakoffExtent float64
	MaxWidth          float64
	AvgWidth          float64
	NetPressure       float64
	ContainedVolume   float64
}

// TimeStep is one sample of the time history.
type TimeStep struct {
	Time        float64 `json:"time"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	NetPressure float64 `json:"netPressure"`
}

// ProfilePoint is one sample of the width profile along the fracture.
type ProfilePoint struct {
	Position float64 `json:"position"`
	Width    float64 `json:"width"`
}

// Result is the outcome of one Engine.Compute call.
type Result struct {
	Model             Model          `json:"model"`
	Length            float64        `json:"length"`
	NoLeakoffLength   float64        `json:"noLeakoffLength"`
	HighLeakoffLength float64        `json:"highLeakoffLength"`
	AvgWidth          float64        `json:"avgWidth"`
	MaxWidth          float64        `json:"maxWidth"`
	NetPressure       float64        `json:"netPressure"`
	WellborePressure  float64        `json:"wellborePressure"`
	Efficiency        float64        `json:"efficiency"`
	InjectedVolume    float64        `json:"injectedVolume"`
	ContainedVolume   float64        `json:"containedVolume"`
	LeakedVolume      float64        `json:"leakedVolume"`
	Regime            Regime         `json:"regime"`
	Warnings          []string       `json:"warnings"`
	History           []TimeStep     `json:"history"`
	Profile           []ProfilePoint `json:"profile"`
}

// Sensitivity parameter names.
const (
	ParamViscosity = "viscosity"
	ParamRate      = "rate"
	ParamSigmaMin  = "min_stress"
	ParamLeakoff   = "leakoff"
)

// SensitivityRow reports percentage changes against a baseline for one perturbation.
type SensitivityRow struct {
	Parameter      string  `json:"parameter"`
	Factor         float64 `json:"factor"`
	LengthChange   float64 `json:"lengthChange"`
	WidthChange    float64 `json:"widthChange"`
	PressureChange float64 `json:"pressureChange"`
}
