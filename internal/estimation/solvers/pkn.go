package solvers

import (
	"math"

	"github.com/kubev2v/fracture-planner/internal/estimation"
)

// WarningPKNTooShort is emitted when L < 2H.
const WarningPKNTooShort = "assumption violated: fracture too short relative to height"

// Compile-time assertion that PKN implements the Solver interface.
var _ estimation.Solver = (*PKN)(nil)

// PKN is the height-contained (Perkins-Kern-Nordgren) model.
type PKN struct {
	coeffs Coefficients
}

// NewPKN creates a PKN solver with PKNCoefficients unless overridden.
func NewPKN(opts ...Option) *PKN {
	return &PKN{coeffs: newCoefficients(PKNCoefficients, opts)}
}

func (s *PKN) Model() estimation.Model { return estimation.ModelPKN }

func (s *PKN) ProfileExponent() float64 { return s.coeffs.ProfileExponent }

func (s *PKN) Evaluate(in estimation.Input, t float64) estimation.State {
	return evaluate(s.coeffs, in, t, pknAsymptotes, pknClosure, twoWingVolume)
}

// Warnings flags fractures shorter than AspectLimit heights.
func (s *PKN) Warnings(in estimation.Input, st estimation.State) []string {
	if s.coeffs.AspectLimit > 0 && st.Extent < s.coeffs.AspectLimit*in.Height {
		return []string{WarningPKNTooShort}
	}
	return nil
}

// L = a·(q³Ep/(μH⁴))^b·t^c
func pknAsymptotes(c Coefficients, in estimation.Input, ep, t float64) (float64, float64) {
	group := math.Pow(in.Rate, 3) * ep / (in.Viscosity * math.Pow(in.Height, 4))
	noLeakoff := c.NoLeakoff * math.Pow(group, c.GroupExponent) * math.Pow(t, c.TimeExponent)
	return noLeakoff, leakoffLimitedLength(in, t)
}

// p = a·(μqL/H⁴)^n·Ep^(1-n), w = b·p·H/Ep
func pknClosure(c Coefficients, in estimation.Input, ep, length float64) (float64, float64) {
	group := in.Viscosity * in.Rate * length / math.Pow(in.Height, 4)
	pressure := c.Pressure * math.Pow(group, c.Closure) * math.Pow(ep, 1-c.Closure)
	maxWidth := c.Width * pressure * in.Height / ep
	return pressure, maxWidth
}
