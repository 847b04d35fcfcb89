package report

import (
	"time"

	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/service/report/types"
	"github.com/kubev2v/fracture-planner/internal/store/model"
	"github.com/kubev2v/fracture-planner/internal/units"
	"github.com/pkg/errors"
)

type StandardRunProcessor struct{}

func NewStandardRunProcessor() *StandardRunProcessor {
	return &StandardRunProcessor{}
}

func (p *StandardRunProcessor) ProcessRun(run *model.Run) (*types.ReportData, error) {
	if run == nil {
		return nil, errors.New("run is nil")
	}
	if run.Input == nil || run.Result == nil {
		return nil, errors.Errorf("run %s has no stored result", run.ID)
	}

	system, err := units.ParseSystem(run.UnitSystem)
	if err != nil {
		return nil, errors.Wrapf(err, "run %s", run.ID)
	}

	labels := system.Labels()
	result := system.ResultFromSI(run.Result.Data)

	data := &types.ReportData{
		Run:        run,
		UnitSystem: system,
		Labels:     labels,
		Result:     result,
		Inputs:     p.processInputs(run, labels),
		Outputs:    p.processOutputs(result, labels),
		Timestamps: p.generateTimestamps(run),
	}
	if run.Sensitivity != nil {
		data.Sensitivity = run.Sensitivity.Data
	}

	return data, nil
}

// processInputs lists the input exactly as the caller gave it.
func (p *StandardRunProcessor) processInputs(run *model.Run, l units.Labels) []types.Quantity {
	in := run.Input.Data
	return []types.Quantity{
		{Name: "Young's modulus", Value: in.YoungModulus, Unit: l.Pressure},
		{Name: "Poisson's ratio", Value: in.PoissonRatio},
		{Name: "Minimum horizontal stress", Value: in.SigmaMin, Unit: l.Pressure},
		{Name: "Leak-off coefficient", Value: in.LeakoffCoefficient, Unit: l.Leakoff},
		{Name: "Fluid viscosity", Value: in.Viscosity, Unit: l.Viscosity},
		{Name: "Injection rate", Value: in.Rate, Unit: l.Rate},
		{Name: "Fracture height", Value: in.Height, Unit: l.Length},
		{Name: "Fracture toughness", Value: in.Toughness, Unit: l.Toughness},
		{Name: "Pumping time", Value: in.Time, Unit: l.Time},
		{Name: "Pressure limit", Value: in.PressureLimit, Unit: l.Pressure},
		{Name: "Depth", Value: in.Depth, Unit: l.Length},
	}
}

func (p *StandardRunProcessor) processOutputs(res estimation.Result, l units.Labels) []types.Quantity {
	return []types.Quantity{
		{Name: "Fracture length", Value: res.Length, Unit: l.Length},
		{Name: "No leak-off length", Value: res.NoLeakoffLength, Unit: l.Length},
		{Name: "High leak-off length", Value: res.HighLeakoffLength, Unit: l.Length},
		{Name: "Maximum width", Value: res.MaxWidth, Unit: l.Width},
		{Name: "Average width", Value: res.AvgWidth, Unit: l.Width},
		{Name: "Net pressure", Value: res.NetPressure, Unit: l.Pressure},
		{Name: "Wellbore pressure", Value: res.WellborePressure, Unit: l.Pressure},
		{Name: "Fluid efficiency", Value: res.Efficiency},
		{Name: "Injected volume", Value: res.InjectedVolume, Unit: l.Volume},
		{Name: "Fracture volume", Value: res.ContainedVolume, Unit: l.Volume},
		{Name: "Leaked volume", Value: res.LeakedVolume, Unit: l.Volume},
	}
}

func (p *StandardRunProcessor) generateTimestamps(run *model.Run) types.ReportTimestamps {
	now := time.Now()
	return types.ReportTimestamps{
		Generated:     now.Format("2006-01-02"),
		GeneratedTime: now.Format("15:04:05"),
		RunCreated:    run.CreatedAt.UTC().Format(time.RFC3339),
	}
}
