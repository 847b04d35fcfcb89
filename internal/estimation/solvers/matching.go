package solvers

import (
	"math"

	"github.com/kubev2v/fracture-planner/internal/estimation"
)

// asymptotes returns the no-leakoff and high-leakoff extents at t.
type asymptotes func(c Coefficients, in estimation.Input, ep, t float64) (noLeakoff, highLeakoff float64)

// closure returns net pressure and maximum width for a matched extent.
type closure func(c Coefficients, in estimation.Input, ep, extent float64) (pressure, maxWidth float64)

// volume returns the fluid volume held by the fracture.
type volume func(in estimation.Input, extent, avgWidth float64) float64

// evaluate is the matching routine shared by every model.
func evaluate(c Coefficients, in estimation.Input, t float64, a asymptotes, cl closure, v volume) estimation.State {
	ep := estimation.PlaneStrainModulus(in.YoungModulus, in.PoissonRatio)

	noLeakoff, highLeakoff := a(c, in, ep, t)
	extent := estimation.MatchExtent(noLeakoff, highLeakoff)

	pressure, maxWidth := cl(c, in, ep, extent)
	avgWidth := c.AvgWidth * maxWidth

	return estimation.State{
		Extent:            extent,
		NoLeakoffExtent:   noLeakoff,
		HighLeakoffExtent: highLeakoff,
		MaxWidth:          maxWidth,
		AvgWidth:          avgWidth,
		NetPressure:       pressure,
		ContainedVolume:   v(in, extent, avgWidth),
	}
}

// leakoffLimitedLength is q√t/(2π·CL·H), shared by the two height-bounded models.
func leakoffLimitedLength(in estimation.Input, t float64) float64 {
	return in.Rate * math.Sqrt(t) / (2 * math.Pi * in.LeakoffCoefficient * in.Height)
}

// twoWingVolume is 2·L·H·w for a fracture of height H growing both ways from the well.
func twoWingVolume(in estimation.Input, length, avgWidth float64) float64 {
	return 2 * length * in.Height * avgWidth
}
