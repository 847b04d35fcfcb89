package estimation

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// WarningVolumeBalance is attached when the contained volume exceeds the injected volume and
// both efficiency and leaked-off volume were clamped.
const WarningVolumeBalance = "volume balance: contained volume exceeds injected volume"

// Engine dispatches computations to registered Solver objects.
type Engine struct {
	solvers    map[Model]Solver
	order      []Model
	classifier *Classifier
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClassifier replaces the default regime classifier.
func WithClassifier(c *Classifier) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// NewEngine creates a new Engine with no solvers registered.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		solvers:    make(map[Model]Solver),
		order:      make([]Model, 0),
		classifier: NewClassifier(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register adds a Solver to the engine.
// Register panics if a solver for the same Model is already registered,
// as the second one would silently shadow the first.
func (e *Engine) Register(s Solver) {
	if _, found := e.solvers[s.Model()]; found {
		panic(fmt.Sprintf("estimation: solver %q already registered", s.Model()))
	}
	e.solvers[s.Model()] = s
	e.order = append(e.order, s.Model())
}

// Models returns the registered variants in registration order.
func (e *Engine) Models() []Model {
	return append([]Model(nil), e.order...)
}

// Solver returns the solver registered for m.
func (e *Engine) Solver(m Model) (Solver, error) {
	s, ok := e.solvers[m]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, m)
	}
	return s, nil
}

// Classifier returns the regime classifier used by the engine.
func (e *Engine) Classifier() *Classifier { return e.classifier }

// Compute evaluates model m at in.Time and derives the history and width profile.
func (e *Engine) Compute(m Model, in Input) (Result, error) {
	solver, err := e.Solver(m)
	if err != nil {
		return Result{}, err
	}
	if err := Validate(in); err != nil {
		return Result{}, err
	}
	return e.compute(solver, in)
}

func (e *Engine) compute(solver Solver, in Input) (Result, error) {
	final := solver.Evaluate(in, in.Time)

	injected := in.Rate * in.Time
	efficiency := final.ContainedVolume / injected
	leaked := injected - final.ContainedVolume

	warnings := append([]string{}, solver.Warnings(in, final)...)
	if efficiency > 1 {
		efficiency = 1
		leaked = 0
		warnings = append(warnings, WarningVolumeBalance)
	}

	res := Result{
		Model:             solver.Model(),
		Length:            final.Extent,
		NoLeakoffLength:   final.NoLeakoffExtent,
		HighLeakoffLength: final.HighLeakoffExtent,
		AvgWidth:          final.AvgWidth,
		MaxWidth:          final.MaxWidth,
		NetPressure:       final.NetPressure,
		WellborePressure:  in.SigmaMin + final.NetPressure,
		Efficiency:        efficiency,
		InjectedVolume:    injected,
		ContainedVolume:   final.ContainedVolume,
		LeakedVolume:      leaked,
		Regime:            e.classifier.Classify(in.Toughness, in.Viscosity, in.Rate),
		Warnings:          warnings,
		History: History(in.Time, func(t float64) State {
			return solver.Evaluate(in, t)
		}),
		Profile: Profile(final.Extent, final.MaxWidth, solver.ProfileExponent()),
	}

	if err := checkFinite(res); err != nil {
		return Result{}, err
	}
	return res, nil
}

type perturbation struct {
	param string
	apply func(in *Input, factor float64)
}

var (
	sensitivityFactors = []float64{0.5, 2.0}

	sensitivityParams = []perturbation{
		{ParamViscosity, func(in *Input, f float64) { in.Viscosity *= f }},
		{ParamRate, func(in *Input, f float64) { in.Rate *= f }},
		{ParamSigmaMin, func(in *Input, f float64) { in.SigmaMin *= f }},
		{ParamLeakoff, func(in *Input, f float64) { in.LeakoffCoefficient *= f }},
	}
)

// Sensitivity re-runs model m with each sensitivity parameter scaled by 0.5 and 2.0 and
// reports percentage changes against base. Rows are ordered parameter first, then factor.
// The perturbed runs share nothing and are evaluated concurrently.
func (e *Engine) Sensitivity(in Input, m Model, base Result) ([]SensitivityRow, error) {
	solver, err := e.Solver(m)
	if err != nil {
		return nil, err
	}
	if err := Validate(in); err != nil {
		return nil, err
	}
	if err := checkBaseline(m, base); err != nil {
		return nil, err
	}

	rows := make([]SensitivityRow, 0, len(sensitivityParams)*len(sensitivityFactors))
	inputs := make([]Input, 0, cap(rows))
	for _, p := range sensitivityParams {
		for _, f := range sensitivityFactors {
			perturbed := in
			p.apply(&perturbed, f)
			inputs = append(inputs, perturbed)
			rows = append(rows, SensitivityRow{Parameter: p.param, Factor: f})
		}
	}

	var g errgroup.Group
	for i := range rows {
		g.Go(func() error {
			res, err := e.compute(solver, inputs[i])
			if err != nil {
				return fmt.Errorf("sensitivity %s x%g: %w", rows[i].Parameter, rows[i].Factor, err)
			}
			rows[i].LengthChange = percentChange(res.Length, base.Length)
			rows[i].WidthChange = percentChange(res.AvgWidth, base.AvgWidth)
			rows[i].PressureChange = percentChange(res.NetPressure, base.NetPressure)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func percentChange(perturbed, baseline float64) float64 {
	return (perturbed - baseline) / baseline * 100
}

func checkBaseline(m Model, base Result) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"length", base.Length},
		{"avgWidth", base.AvgWidth},
		{"netPressure", base.NetPressure},
	} {
		if f.value == 0 || !isFinite(f.value) {
			return &DegenerateError{Model: m, Field: "baseline " + f.name, Value: f.value}
		}
	}
	return nil
}

func checkFinite(res Result) error {
	scalars := []struct {
		name  string
		value float64
	}{
		{"length", res.Length},
		{"noLeakoffLength", res.NoLeakoffLength},
		{"highLeakoffLength", res.HighLeakoffLength},
		{"avgWidth", res.AvgWidth},
		{"maxWidth", res.MaxWidth},
		{"netPressure", res.NetPressure},
		{"wellborePressure", res.WellborePressure},
		{"efficiency", res.Efficiency},
		{"injectedVolume", res.InjectedVolume},
		{"containedVolume", res.ContainedVolume},
		{"leakedVolume", res.LeakedVolume},
	}
	for _, s := range scalars {
		if !isFinite(s.value) {
			return &DegenerateError{Model: res.Model, Field: s.name, Value: s.value}
		}
	}
	for i, step := range res.History {
		for _, v := range []float64{step.Length, step.Width, step.NetPressure} {
			if !isFinite(v) {
				return &DegenerateError{Model: res.Model, Field: fmt.Sprintf("history[%d]", i), Value: v}
			}
		}
	}
	for i, p := range res.Profile {
		if !isFinite(p.Width) || !isFinite(p.Position) {
			return &DegenerateError{Model: res.Model, Field: fmt.Sprintf("profile[%d]", i), Value: p.Width}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
