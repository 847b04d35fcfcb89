package mappers

import (
	"github.com/kubev2v/fracture-planner/api/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/units"
)

// InputFromApi assumes the request passed validation, so every required
// pointer is set.
func InputFromApi(in *v1alpha1.Input) estimation.Input {
	out := estimation.Input{
		YoungModulus:       *in.YoungModulus,
		PoissonRatio:       *in.PoissonRatio,
		SigmaMin:           *in.SigmaMin,
		LeakoffCoefficient: *in.LeakoffCoefficient,
		Viscosity:          *in.Viscosity,
		Rate:               *in.Rate,
		Height:             *in.Height,
		Toughness:          *in.Toughness,
		Time:               *in.Time,
	}
	if in.PressureLimit != nil {
		out.PressureLimit = *in.PressureLimit
	}
	if in.Depth != nil {
		out.Depth = *in.Depth
	}
	return out
}

func ComputeFormFromApi(req *v1alpha1.ComputationRequest, defaultSystem units.System, persistByDefault bool) (service.ComputeForm, error) {
	m, err := estimation.ParseModel(req.Model)
	if err != nil {
		return service.ComputeForm{}, err
	}

	system, err := unitSystemOrDefault(req.UnitSystem, defaultSystem)
	if err != nil {
		return service.ComputeForm{}, err
	}

	persist := persistByDefault
	if req.Persist != nil {
		persist = *req.Persist
	}

	return service.ComputeForm{
		Name:       req.Name,
		Model:      m,
		UnitSystem: system,
		Input:      InputFromApi(req.Input),
		Persist:    persist,
	}, nil
}

func unitSystemOrDefault(v string, def units.System) (units.System, error) {
	if v == "" {
		return def, nil
	}
	return units.ParseSystem(v)
}

func UnitSystemFromApi(v string, def units.System) (units.System, error) {
	return unitSystemOrDefault(v, def)
}
