package solvers

import (
	"math"

	"github.com/kubev2v/fracture-planner/internal/estimation"
)

// WarningKGDTooLong is emitted when L > H.
const WarningKGDTooLong = "assumption violated: fracture too long for plane-strain approximation"

// Compile-time assertion that KGD implements the Solver interface.
var _ estimation.Solver = (*KGD)(nil)

// KGD is the plane-strain (Khristianovic-Geertsma-de Klerk) model.
type KGD struct {
	coeffs Coefficients
}

// NewKGD creates a KGD solver with KGDCoefficients unless overridden.
func NewKGD(opts ...Option) *KGD {
	return &KGD{coeffs: newCoefficients(KGDCoefficients, opts)}
}

func (s *KGD) Model() estimation.Model { return estimation.ModelKGD }

func (s *KGD) ProfileExponent() float64 { return s.coeffs.ProfileExponent }

func (s *KGD) Evaluate(in estimation.Input, t float64) estimation.State {
	return evaluate(s.coeffs, in, t, kgdAsymptotes, kgdClosure, twoWingVolume)
}

// Warnings flags fractures longer than AspectLimit heights.
func (s *KGD) Warnings(in estimation.Input, st estimation.State) []string {
	if s.coeffs.AspectLimit > 0 && st.Extent > s.coeffs.AspectLimit*in.Height {
		return []string{WarningKGDTooLong}
	}
	return nil
}

// L = a·(Ep·q³/(μH³))^b·t^c
func kgdAsymptotes(c Coefficients, in estimation.Input, ep, t float64) (float64, float64) {
	group := ep * math.Pow(in.Rate, 3) / (in.Viscosity * math.Pow(in.Height, 3))
	noLeakoff := c.NoLeakoff * math.Pow(group, c.GroupExponent) * math.Pow(t, c.TimeExponent)
	return noLeakoff, leakoffLimitedLength(in, t)
}

// w = b·(μqL²/(Ep·H))^n, p = a·Ep·w/L
func kgdClosure(c Coefficients, in estimation.Input, ep, length float64) (float64, float64) {
	group := in.Viscosity * in.Rate * length * length / (ep * in.Height)
	maxWidth := c.Width * math.Pow(group, c.Closure)
	pressure := c.Pressure * ep * maxWidth / length
	return pressure, maxWidth
}
