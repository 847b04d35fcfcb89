package model

type RunStats struct {
	// Total is the number of stored runs
	Total int
	// WithWarnings counts runs whose result carries at least one warning
	WithWarnings int
	// ByModel is keyed by model name
	ByModel map[string]int
	// ByRegime is keyed by regime label
	ByRegime map[string]int
}

func NewRunStats(runs []Run) RunStats {
	stats := RunStats{
		ByModel:  make(map[string]int),
		ByRegime: make(map[string]int),
	}

	for _, r := range runs {
		stats.Total++
		stats.ByModel[r.Model]++
		if r.Regime != "" {
			stats.ByRegime[r.Regime]++
		}
		if r.Warnings > 0 {
			stats.WithWarnings++
		}
	}

	return stats
}
