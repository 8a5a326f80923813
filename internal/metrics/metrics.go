package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds run statistics in a private Prometheus registry. Nothing is
// served; Summary renders the values once the run is over.
type Metrics struct {
	FramesRead       prometheus.Counter
	FramesProcessed  prometheus.Counter
	ReadFailures     prometheus.Counter
	DetectionsTotal  prometheus.Counter
	DetectionsKept   prometheus.Counter
	ZoneCount        prometheus.Gauge
	InferenceSeconds prometheus.Histogram

	registry *prometheus.Registry
}

// New creates a Metrics instance with registered collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FramesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animalcount_frames_read_total",
			Help: "Frames successfully read from the capture source",
		}),
		FramesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animalcount_frames_processed_total",
			Help: "Frames that went through detection, annotation and display",
		}),
		ReadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animalcount_read_failures_total",
			Help: "Failed or empty frame reads",
		}),
		DetectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animalcount_detections_total",
			Help: "Detections returned by the model after suppression",
		}),
		DetectionsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "animalcount_detections_kept_total",
			Help: "Detections of the selected class",
		}),
		ZoneCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "animalcount_zone_count",
			Help: "Detections inside the zone in the last processed frame",
		}),
		InferenceSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "animalcount_inference_seconds",
			Help:    "Model inference time per frame",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
	}

	m.registry.MustRegister(
		m.FramesRead,
		m.FramesProcessed,
		m.ReadFailures,
		m.DetectionsTotal,
		m.DetectionsKept,
		m.ZoneCount,
		m.InferenceSeconds,
	)
	return m
}

// ObserveInference records how long one inference took.
func (m *Metrics) ObserveInference(d time.Duration) {
	m.InferenceSeconds.Observe(d.Seconds())
}

// Registry exposes the underlying registry (used by tests and Summary).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Summary gathers the registry into a one-line report.
func (m *Metrics) Summary() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", err
	}

	values := make(map[string]float64)
	var inferenceCount uint64
	var inferenceSum float64
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[mf.GetName()] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				inferenceCount = metric.GetHistogram().GetSampleCount()
				inferenceSum = metric.GetHistogram().GetSampleSum()
			}
		}
	}

	avg := 0.0
	if inferenceCount > 0 {
		avg = inferenceSum / float64(inferenceCount) * 1000
	}

	return fmt.Sprintf("frames read=%.0f processed=%.0f read_failures=%.0f detections=%.0f kept=%.0f last_zone_count=%.0f avg_inference=%.1fms",
		values["animalcount_frames_read_total"],
		values["animalcount_frames_processed_total"],
		values["animalcount_read_failures_total"],
		values["animalcount_detections_total"],
		values["animalcount_detections_kept_total"],
		values["animalcount_zone_count"],
		avg,
	), nil
}
