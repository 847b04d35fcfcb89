package solvers

import "math"

// Coefficients holds the constants of one model's closed-form solution.
type Coefficients struct {
	// NoLeakoff is the prefactor of the no-leakoff asymptote.
	NoLeakoff float64
	// GroupExponent applies to the model's dimensional group in the no-leakoff asymptote.
	GroupExponent float64
	// TimeExponent is the power of t in the no-leakoff asymptote.
	TimeExponent float64
	// Closure is the exponent of the pressure/width closure relation.
	Closure float64
	// Pressure and Width are the prefactors of the pressure and maximum width relations.
	Pressure float64
	Width    float64
	// AvgWidth converts maximum width to average width.
	AvgWidth float64
	// ProfileExponent shapes the visual width profile.
	ProfileExponent float64
	// AspectLimit is the length/height ratio at which the geometric assumption breaks. Zero disables the check.
	AspectLimit float64
}

var (
	// PKNCoefficients is the height-contained model.
	PKNCoefficients = Coefficients{
		NoLeakoff:       0.68,
		GroupExponent:   0.2,
		TimeExponent:    0.8,
		Closure:         0.25,
		Pressure:        2.5,
		Width:           3,
		AvgWidth:        math.Pi / 4 * 0.8,
		ProfileExponent: 0.25,
		AspectLimit:     2,
	}

	// KGDCoefficients is the plane-strain model.
	KGDCoefficients = Coefficients{
		NoLeakoff:       0.48,
		GroupExponent:   1.0 / 6,
		TimeExponent:    2.0 / 3,
		Closure:         0.25,
		Pressure:        0.25,
		Width:           1.32,
		AvgWidth:        math.Pi / 4,
		ProfileExponent: 0.5,
		AspectLimit:     1,
	}

	// RadialCoefficients is the penny-shaped model.
	RadialCoefficients = Coefficients{
		NoLeakoff:       0.52,
		GroupExponent:   1.0 / 9,
		TimeExponent:    4.0 / 9,
		Closure:         0.25,
		Pressure:        1.25,
		Width:           8 / math.Pi,
		AvgWidth:        2.0 / 3,
		ProfileExponent: 0.5,
	}
)

// Option configures a solver.
type Option func(*Coefficients)

// WithCoefficients replaces the whole coefficient table.
func WithCoefficients(c Coefficients) Option {
	return func(dst *Coefficients) {
		*dst = c
	}
}

// WithAspectLimit overrides the length/height ratio used for geometry warnings.
// Negative values are ignored.
func WithAspectLimit(limit float64) Option {
	return func(dst *Coefficients) {
		if limit >= 0 {
			dst.AspectLimit = limit
		}
	}
}

func newCoefficients(defaults Coefficients, opts []Option) Coefficients {
	c := defaults
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
