package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fars"

// Metrics holds the Prometheus counters and histograms for loading,
// aggregation and map rendering.
type Metrics struct {
	FilesLoaded   prometheus.Counter
	RecordsLoaded prometheus.Counter
	LoadFailures  *prometheus.CounterVec // labels: reason={not_found,parse,schema}
	LoadDuration  prometheus.Histogram

	// Aggregation metrics.
	YearsRequested prometheus.Counter
	YearsSkipped   prometheus.Counter

	// Map metrics.
	MapsRendered  prometheus.Counter
	MapsSkipped   prometheus.Counter // "no accidents to plot"
	PointsPlotted prometheus.Counter
	PointsUnknown prometheus.Counter // records dropped from the plot for sentinel coordinates
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.FilesLoaded,
		m.RecordsLoaded,
		m.LoadFailures,
		m.LoadDuration,
		m.YearsRequested,
		m.YearsSkipped,
		m.MapsRendered,
		m.MapsSkipped,
		m.PointsPlotted,
		m.PointsUnknown,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FilesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_loaded_total",
			Help:      "Yearly accident files parsed successfully.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Accident records read from yearly files.",
		}),
		LoadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Yearly file loads that failed, by reason.",
		}, []string{"reason"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time to decompress and parse one yearly file.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		YearsRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "years_requested_total",
			Help:      "Years requested from the aggregator.",
		}),
		YearsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "years_skipped_total",
			Help:      "Requested years dropped from aggregation after a load failure.",
		}),
		MapsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maps_rendered_total",
			Help:      "State maps drawn.",
		}),
		MapsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maps_skipped_total",
			Help:      "State map requests with no accidents to plot.",
		}),
		PointsPlotted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_plotted_total",
			Help:      "Accident locations drawn on maps.",
		}),
		PointsUnknown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_unknown_total",
			Help:      "Accidents left off maps because a coordinate was unknown.",
		}),
	}
}
