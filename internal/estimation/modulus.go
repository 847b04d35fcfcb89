package estimation

// PlaneStrainModulus returns E/(1-nu²). Callers must have rejected |nu| >= 1 already.
func PlaneStrainModulus(youngModulus, poissonRatio float64) float64 {
	return youngModulus / (1 - poissonRatio*poissonRatio)
}
