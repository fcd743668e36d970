package optimize

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Observer is notified after every Monte Carlo evaluation.
type Observer interface {
	ObserveSample(retention, score float64, runs int, elapsed time.Duration)
}

// PromObserver exports evaluation counts and timings as Prometheus metrics.
type PromObserver struct {
	evaluations   prometheus.Counter
	runs          prometheus.Counter
	duration      prometheus.Histogram
	lastScore     prometheus.Gauge
	lastRetention prometheus.Gauge
}

// NewPromObserver registers its collectors on reg under the given namespace.
func NewPromObserver(namespace string, reg prometheus.Registerer) *PromObserver {
	factory := promauto.With(reg)
	return &PromObserver{
		evaluations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objective_evaluations_total",
			Help:      "Total number of retention objective evaluations",
		}),
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_runs_total",
			Help:      "Total number of deck simulations run",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "objective_evaluation_duration_seconds",
			Help:      "Wall time of one Monte Carlo evaluation",
			Buckets:   prometheus.DefBuckets,
		}),
		lastScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objective_last_value",
			Help:      "Mean cost per memorized card of the last evaluation",
		}),
		lastRetention: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objective_last_retention",
			Help:      "Desired retention of the last evaluation",
		}),
	}
}

func (o *PromObserver) ObserveSample(retention, score float64, runs int, elapsed time.Duration) {
	o.evaluations.Inc()
	o.runs.Add(float64(runs))
	o.duration.Observe(elapsed.Seconds())
	o.lastScore.Set(score)
	o.lastRetention.Set(retention)
}
