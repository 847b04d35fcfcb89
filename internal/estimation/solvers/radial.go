package solvers

import (
	"math"

	"github.com/kubev2v/fracture-planner/internal/estimation"
)

// Compile-time assertion that Radial implements the Solver interface.
var _ estimation.Solver = (*Radial)(nil)

// Radial is the penny-shaped model. It has no height constraint and emits no geometry warnings.
type Radial struct {
	coeffs Coefficients
}

// NewRadial creates a Radial solver with RadialCoefficients unless overridden.
func NewRadial(opts ...Option) *Radial {
	return &Radial{coeffs: newCoefficients(RadialCoefficients, opts)}
}

func (s *Radial) Model() estimation.Model { return estimation.ModelRadial }

func (s *Radial) ProfileExponent() float64 { return s.coeffs.ProfileExponent }

func (s *Radial) Evaluate(in estimation.Input, t float64) estimation.State {
	return evaluate(s.coeffs, in, t, radialAsymptotes, radialClosure, pennyVolume)
}

func (s *Radial) Warnings(estimation.Input, estimation.State) []string { return nil }

// R = a·(Ep·q³/μ)^b·t^c and R = √(q√t/(π²·CL))
func radialAsymptotes(c Coefficients, in estimation.Input, ep, t float64) (float64, float64) {
	group := ep * math.Pow(in.Rate, 3) / in.Viscosity
	noLeakoff := c.NoLeakoff * math.Pow(group, c.GroupExponent) * math.Pow(t, c.TimeExponent)
	highLeakoff := math.Sqrt(in.Rate * math.Sqrt(t) / (math.Pi * math.Pi * in.LeakoffCoefficient))
	return noLeakoff, highLeakoff
}

// p = a·(μ·q·Ep²/R³)^n, w = b·p·R/Ep
func radialClosure(c Coefficients, in estimation.Input, ep, radius float64) (float64, float64) {
	group := in.Viscosity * in.Rate * ep * ep / math.Pow(radius, 3)
	pressure := c.Pressure * math.Pow(group, c.Closure)
	maxWidth := c.Width * pressure * radius / ep
	return pressure, maxWidth
}

func pennyVolume(_ estimation.Input, radius, avgWidth float64) float64 {
	return math.Pi * radius * radius * avgWidth
}
