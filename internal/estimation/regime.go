package estimation

const (
	// DefaultRegimeThreshold is the score above which a case is labelled toughness dominated.
	DefaultRegimeThreshold = 100.0

	regimeScale = 1e6
)

// Classifier labels a case as toughness or viscosity dominated.
//
// The score K_IC/(mu*q*1e6) is a coarse heuristic rather than a derived dimensionless
// group, so the threshold is configurable and the label should not be read as a precise
// regime boundary.
type Classifier struct {
	threshold float64
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithThreshold overrides the score threshold. Non-positive values are ignored.
func WithThreshold(threshold float64) ClassifierOption {
	return func(c *Classifier) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

// NewClassifier creates a Classifier using DefaultRegimeThreshold unless overridden.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := Classifier{threshold: DefaultRegimeThreshold}
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Threshold returns the configured score threshold.
func (c *Classifier) Threshold() float64 { return c.threshold }

// Score computes K_IC/(mu*q*1e6).
func (c *Classifier) Score(toughness, viscosity, rate float64) float64 {
	return toughness / (viscosity * rate * regimeScale)
}

// Classify returns RegimeToughness when the score exceeds the threshold.
func (c *Classifier) Classify(toughness, viscosity, rate float64) Regime {
	if c.Score(toughness, viscosity, rate) > c.threshold {
		return RegimeToughness
	}
	return RegimeViscosity
}
