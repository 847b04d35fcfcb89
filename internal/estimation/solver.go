package estimation

// Solver evaluates one propagation model in closed form.
type Solver interface {
	// Model returns the variant this solver implements, used as the Engine dispatch key.
	Model() Model
	// Evaluate returns the solution at elapsed time t. It performs no validation.
	Evaluate(in Input, t float64) State
	// ProfileExponent is the power-law exponent used to draw the width profile.
	ProfileExponent() float64
	// Warnings reports violated geometric assumptions for a final state.
	Warnings(in Input, s State) []string
}

// MatchExtent combines the no-leakoff and high-leakoff asymptotes by harmonic sum,
// 1/L = 1/a + 1/b, so the result never exceeds either asymptote.
func MatchExtent(noLeakoff, highLeakoff float64) float64 {
	if noLeakoff <= 0 || highLeakoff <= 0 {
		return 0
	}
	return 1 / (1/noLeakoff + 1/highLeakoff)
}
