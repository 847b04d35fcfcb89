package mappers

import (
	"github.com/kubev2v/fracture-planner/api/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/store/model"
	"github.com/kubev2v/fracture-planner/internal/units"
)

// normalizeResult replaces nil slices with empty ones so clients never see null.
func normalizeResult(res *estimation.Result) {
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	if res.History == nil {
		res.History = []estimation.TimeStep{}
	}
	if res.Profile == nil {
		res.Profile = []estimation.ProfilePoint{}
	}
}

func systemOf(run *model.Run) units.System {
	system, err := units.ParseSystem(run.UnitSystem)
	if err != nil {
		return units.SI
	}
	return system
}

// RunToApi expresses the stored SI result in the unit system of the run.
func RunToApi(run *model.Run, persisted bool) v1alpha1.Run {
	system := systemOf(run)

	out := v1alpha1.Run{
		ID:          run.ID.String(),
		Name:        run.Name,
		CreatedAt:   run.CreatedAt,
		Persisted:   persisted,
		UnitSystem:  string(system),
		Units:       system.Labels(),
		Sensitivity: []estimation.SensitivityRow{},
	}
	if run.Input != nil {
		out.Input = run.Input.Data
	}
	if run.Result != nil {
		out.Result = system.ResultFromSI(run.Result.Data)
	}
	if run.Sensitivity != nil && run.Sensitivity.Data != nil {
		out.Sensitivity = run.Sensitivity.Data
	}
	normalizeResult(&out.Result)

	return out
}

func RunListToApi(runs model.RunList) v1alpha1.RunList {
	list := v1alpha1.RunList{Runs: make([]v1alpha1.RunSummary, 0, len(runs)), Count: len(runs)}
	for _, r := range runs {
		list.Runs = append(list.Runs, v1alpha1.RunSummary{
			ID:         r.ID.String(),
			Name:       r.Name,
			CreatedAt:  r.CreatedAt,
			Model:      r.Model,
			UnitSystem: r.UnitSystem,
			Regime:     r.Regime,
			Warnings:   r.Warnings,
		})
	}
	return list
}

func ComparisonToApi(system units.System, comparisons []service.ModelComparison) v1alpha1.Comparison {
	out := v1alpha1.Comparison{
		UnitSystem: string(system),
		Units:      system.Labels(),
		Results:    make([]v1alpha1.ModelResult, 0, len(comparisons)),
	}
	for _, c := range comparisons {
		entry := v1alpha1.ModelResult{Model: string(c.Model)}
		if c.Error != nil {
			entry.Error = c.Error.Error()
		} else if c.Result != nil {
			res := system.ResultFromSI(*c.Result)
			normalizeResult(&res)
			entry.Result = &res
		}
		out.Results = append(out.Results, entry)
	}
	return out
}

var modelDescriptions = map[estimation.Model]string{
	estimation.ModelPKN:    "Perkins-Kern-Nordgren: height-contained fracture, elliptic vertical section",
	estimation.ModelKGD:    "Khristianovic-Geertsma-de Klerk: plane-strain horizontal section, rectangular height",
	estimation.ModelRadial: "Radial (penny-shaped) fracture growing from a point source",
}

func ModelsToApi(engine *estimation.Engine) v1alpha1.ModelList {
	list := v1alpha1.ModelList{Models: make([]v1alpha1.ModelInfo, 0, len(engine.Models()))}
	for _, m := range engine.Models() {
		solver, err := engine.Solver(m)
		if err != nil {
			continue
		}
		list.Models = append(list.Models, v1alpha1.ModelInfo{
			Name:            string(m),
			ProfileExponent: solver.ProfileExponent(),
			Description:     modelDescriptions[m],
		})
	}
	return list
}
