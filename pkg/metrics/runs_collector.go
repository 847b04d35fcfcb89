package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/kubev2v/fracture-planner/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const collectTimeout = 5 * time.Second

type runStatsCollector struct {
	store         store.Store
	totalRuns     *prometheus.Desc
	runsByModel   *prometheus.Desc
	runsByRegime  *prometheus.Desc
	runsWithIssue *prometheus.Desc
}

// NewRunStatsCollector reports aggregates over the persisted runs each time
// the registry is scraped.
func NewRunStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_runs_%s", fracturePlanner, name)
	}

	return &runStatsCollector{
		store: s,
		totalRuns: prometheus.NewDesc(
			fqName("total"),
			"Total number of stored runs.",
			nil,
			prometheus.Labels{},
		),
		runsByModel: prometheus.NewDesc(
			fqName("by_model_total"),
			"Stored runs by fracture model",
			[]string{"model"},
			prometheus.Labels{},
		),
		runsByRegime: prometheus.NewDesc(
			fqName("by_regime_total"),
			"Stored runs by propagation regime",
			[]string{"regime"},
			prometheus.Labels{},
		),
		runsWithIssue: prometheus.NewDesc(
			fqName("with_warnings_total"),
			"Stored runs carrying at least one warning",
			nil,
			prometheus.Labels{},
		),
	}
}

func (c *runStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalRuns
	ch <- c.runsByModel
	ch <- c.runsByRegime
	ch <- c.runsWithIssue
}

func (c *runStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	stats, err := c.store.Statistics(ctx)
	if err != nil {
		zap.S().Named("metrics").Warnw("failed to collect run statistics", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.totalRuns, prometheus.GaugeValue, float64(stats.Total))
	ch <- prometheus.MustNewConstMetric(c.runsWithIssue, prometheus.GaugeValue, float64(stats.WithWarnings))
	for m, count := range stats.ByModel {
		ch <- prometheus.MustNewConstMetric(c.runsByModel, prometheus.GaugeValue, float64(count), m)
	}
	for r, count := range stats.ByRegime {
		ch <- prometheus.MustNewConstMetric(c.runsByRegime, prometheus.GaugeValue, float64(count), r)
	}
}
