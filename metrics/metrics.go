// Package metrics records generation metrics and writes them as a
// node-exporter textfile.
package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/metric"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	namespace = "aquarium_opil"
	subsystem = "htc"
	service   = "htc_generator"
)

// Generation holds Prometheus metrics for document generation runs.
type Generation struct {
	registry *metric.MetricsRegistry

	runs      *prometheus.CounterVec // By status (ok/error)
	failures  *prometheus.CounterVec // By stage (generate/publish/metrics)
	objects   *prometheus.GaugeVec   // By class
	triples   prometheus.Gauge
	bytes     prometheus.Gauge
	published prometheus.Gauge
	duration  prometheus.Histogram
	lastRun   prometheus.Gauge
}

// New creates and registers generation metrics with registry. Registration
// is idempotent per metric name, so a second New on the same registry
// succeeds but only the first set of collectors is gathered.
func New(registry *metric.MetricsRegistry) (*Generation, error) {
	g := &Generation{
		registry: registry,

		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Total number of generation runs",
		}, []string{"status"}),

		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "failures_total",
			Help:      "Total number of failed runs by stage",
		}, []string{"stage"}),

		objects: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "objects",
			Help:      "Objects in the last generated document by class",
		}, []string{"class"}),

		triples: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "triples",
			Help:      "Triples in the last generated document",
		}),

		bytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "output_bytes",
			Help:      "Size of the last written document",
		}),

		published: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "published_entities",
			Help:      "Entities published to the graph by the last run",
		}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "generation_duration_seconds",
			Help:      "Generation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),

		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
	}

	errs := []error{
		registry.RegisterCounterVec(service, "runs_total", g.runs),
		registry.RegisterCounterVec(service, "failures_total", g.failures),
		registry.RegisterGaugeVec(service, "objects", g.objects),
		registry.RegisterGauge(service, "triples", g.triples),
		registry.RegisterGauge(service, "output_bytes", g.bytes),
		registry.RegisterGauge(service, "published_entities", g.published),
		registry.RegisterHistogram(service, "generation_duration_seconds", g.duration),
		registry.RegisterGauge(service, "last_success_timestamp_seconds", g.lastRun),
	}
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("register generation metrics: %w", err)
		}
	}

	return g, nil
}

// Run summarizes one successful generation.
type Run struct {
	ClassCounts map[string]int
	Triples     int
	Bytes       int
	Duration    time.Duration
	FinishedAt  time.Time
}

// ObserveRun records a successful run.
func (g *Generation) ObserveRun(run Run) {
	g.runs.WithLabelValues("ok").Inc()
	g.objects.Reset()
	for class, n := range run.ClassCounts {
		g.objects.WithLabelValues(className(class)).Set(float64(n))
	}
	g.triples.Set(float64(run.Triples))
	g.bytes.Set(float64(run.Bytes))
	g.duration.Observe(run.Duration.Seconds())
	g.lastRun.Set(float64(run.FinishedAt.Unix()))
}

// ObserveFailure records a failed run at stage.
func (g *Generation) ObserveFailure(stage string) {
	g.runs.WithLabelValues("error").Inc()
	g.failures.WithLabelValues(stage).Inc()
}

// ObservePublished records the number of entities published.
func (g *Generation) ObservePublished(n int) {
	g.published.Set(float64(n))
}

// WriteTextfile writes the generation metrics in the text exposition
// format. Runtime collectors are left out so the file does not clash with
// the node exporter's own metrics.
func (g *Generation) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, g.gatherer()); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func (g *Generation) gatherer() prometheus.Gatherer {
	return prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		families, err := g.registry.PrometheusRegistry().Gather()
		if err != nil {
			return nil, err
		}
		own := families[:0]
		for _, mf := range families {
			if strings.HasPrefix(mf.GetName(), namespace+"_") {
				own = append(own, mf)
			}
		}
		return own, nil
	})
}

// className shortens a class IRI to its local name.
func className(iri string) string {
	if i := strings.LastIndexAny(iri, "/#"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
