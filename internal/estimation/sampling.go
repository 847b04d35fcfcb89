package estimation

import "math"

const (
	// HistoryPoints is the number of time samples in a Result history.
	HistoryPoints = 50
	// ProfileSegments is the number of intervals of the width profile (51 points).
	ProfileSegments = 50
)

// History samples eval at total*i/HistoryPoints for i = 1..HistoryPoints. Every point is an
// independent evaluation; nothing carries between samples.
func History(total float64, eval func(t float64) State) []TimeStep {
	steps := make([]TimeStep, HistoryPoints)
	for i := range steps {
		t := total * float64(i+1) / HistoryPoints
		s := eval(t)
		steps[i] = TimeStep{
			Time:        t,
			Length:      s.Extent,
			Width:       s.MaxWidth,
			NetPressure: s.NetPressure,
		}
	}
	return steps
}

// Profile draws w(x) = maxWidth*(1-x/length)^exponent from the wellbore to the tip.
// The shape is a visual approximation, not the model's analytical cross-section.
func Profile(length, maxWidth, exponent float64) []ProfilePoint {
	points := make([]ProfilePoint, ProfileSegments+1)
	for i := range points {
		frac := float64(i) / ProfileSegments
		points[i] = ProfilePoint{
			Position: length * frac,
			Width:    maxWidth * math.Pow(1-frac, exponent),
		}
	}
	return points
}
