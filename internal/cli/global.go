package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/kubev2v/fracture-planner/api/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/estimation/solvers"
	"github.com/kubev2v/fracture-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/fracture-planner/internal/handlers/validator"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/store/model"
	"github.com/kubev2v/fracture-planner/internal/units"
)

type inputFlag struct {
	name     string
	usage    string
	required bool
	field    func(in *v1alpha1.Input) **float64
}

var inputFlags = []inputFlag{
	{"young-modulus", "Young's modulus (Pa | psi)", true, func(in *v1alpha1.Input) **float64 { return &in.YoungModulus }},
	{"poisson-ratio", "Poisson's ratio", true, func(in *v1alpha1.Input) **float64 { return &in.PoissonRatio }},
	{"sigma-min", "Minimum horizontal stress (Pa | psi)", true, func(in *v1alpha1.Input) **float64 { return &in.SigmaMin }},
	{"leakoff", "Carter leak-off coefficient (m/s^0.5 | ft/min^0.5)", true, func(in *v1alpha1.Input) **float64 { return &in.LeakoffCoefficient }},
	{"viscosity", "Fluid viscosity (Pa·s | cp)", true, func(in *v1alpha1.Input) **float64 { return &in.Viscosity }},
	{"rate", "Injection rate (m³/s | bbl/min)", true, func(in *v1alpha1.Input) **float64 { return &in.Rate }},
	{"height", "Fracture height (m | ft)", true, func(in *v1alpha1.Input) **float64 { return &in.Height }},
	{"toughness", "Fracture toughness (Pa·m^0.5 | psi·in^0.5)", true, func(in *v1alpha1.Input) **float64 { return &in.Toughness }},
	{"time", "Pumping time (s | min)", true, func(in *v1alpha1.Input) **float64 { return &in.Time }},
	{"pressure-limit", "Surface pressure limit, informational (Pa | psi)", false, func(in *v1alpha1.Input) **float64 { return &in.PressureLimit }},
	{"depth", "True vertical depth, informational (m | ft)", false, func(in *v1alpha1.Input) **float64 { return &in.Depth }},
}

// GlobalOptions collects the model, unit system and input parameters shared
// by every command that runs the engine in-process.
type GlobalOptions struct {
	Model           string
	UnitSystem      string
	InputFile       string
	RegimeThreshold float64

	values map[string]*float64
	flags  *pflag.FlagSet
	input  v1alpha1.Input
	out    io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Model:           strings.ToLower(string(estimation.ModelPKN)),
		UnitSystem:      string(units.SI),
		RegimeThreshold: estimation.DefaultRegimeThreshold,
		values:          make(map[string]*float64, len(inputFlags)),
		out:             os.Stdout,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Model, "model", "m", o.Model, "Fracture model. One of: (pkn, kgd, radial).")
	fs.StringVar(&o.UnitSystem, "units", o.UnitSystem, "Unit system of input and output. One of: (si, field).")
	fs.StringVarP(&o.InputFile, "input", "f", o.InputFile, "YAML or JSON file holding the input parameters. Flags override its values.")
	fs.Float64Var(&o.RegimeThreshold, "regime-threshold", o.RegimeThreshold, "Score above which a fracture is labelled toughness dominated")

	for _, f := range inputFlags {
		v := new(float64)
		o.values[f.name] = v
		fs.Float64Var(v, f.name, 0, f.usage)
	}
	o.flags = fs
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()

	if o.InputFile != "" {
		data, err := os.ReadFile(o.InputFile)
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}
		if err := yaml.Unmarshal(data, &o.input); err != nil {
			return fmt.Errorf("parsing input file %s: %w", o.InputFile, err)
		}
	}

	for _, f := range inputFlags {
		if o.flags == nil || !o.flags.Changed(f.name) {
			continue
		}
		v := *o.values[f.name]
		*f.field(&o.input) = &v
	}

	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	var missing []string
	for _, f := range inputFlags {
		if f.required && *f.field(&o.input) == nil {
			missing = append(missing, "--"+f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing input parameters: %s", strings.Join(missing, ", "))
	}

	if o.RegimeThreshold <= 0 {
		return fmt.Errorf("regime threshold must be positive")
	}

	v := validator.NewValidator()
	v.Register(validator.NewComputationValidationRules()...)
	return v.Struct(o.request())
}

func (o *GlobalOptions) request() *v1alpha1.ComputationRequest {
	input := o.input
	persist := false
	return &v1alpha1.ComputationRequest{
		Model:      o.Model,
		UnitSystem: o.UnitSystem,
		Persist:    &persist,
		Input:      &input,
	}
}

func (o *GlobalOptions) system() units.System {
	system, err := units.ParseSystem(o.UnitSystem)
	if err != nil {
		return units.SI
	}
	return system
}

// Service returns a computation service without run history.
func (o *GlobalOptions) Service() *service.ComputationService {
	engine := solvers.NewEngine(estimation.WithClassifier(
		estimation.NewClassifier(estimation.WithThreshold(o.RegimeThreshold)),
	))
	return service.NewComputationService(nil, engine)
}

func (o *GlobalOptions) compute(ctx context.Context) (*model.Run, error) {
	form, err := mappers.ComputeFormFromApi(o.request(), units.SI, false)
	if err != nil {
		return nil, err
	}
	return o.Service().Compute(ctx, form)
}
