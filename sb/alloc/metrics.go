package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "slabkit"
	metricsSubsystem = "alloc"
)

// Instrumented wraps an Allocator and records acquisitions, releases,
// failures and the number of bytes currently held.
type Instrumented struct {
	next Allocator

	acquired prometheus.Counter
	released prometheus.Counter
	failures *prometheus.CounterVec
	held     prometheus.Gauge
}

// Instrument wraps next with Prometheus metrics labelled allocator=label and
// registers them with reg. A nil reg leaves the collectors unregistered, which
// is useful in tests that read them directly.
func Instrument(next Allocator, reg prometheus.Registerer, label string) (*Instrumented, error) {
	labels := prometheus.Labels{"allocator": label}
	in := &Instrumented{
		next: next,
		acquired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "regions_acquired_total",
			Help:        "Number of regions handed out by the allocator",
			ConstLabels: labels,
		}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "regions_released_total",
			Help:        "Number of regions returned to the allocator",
			ConstLabels: labels,
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "failures_total",
			Help:        "Number of failed allocator operations",
			ConstLabels: labels,
		}, []string{"op"}),
		held: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   metricsSubsystem,
			Name:        "bytes_held",
			Help:        "Bytes acquired and not yet released",
			ConstLabels: labels,
		}),
	}

	if reg != nil {
		if err := register(reg, in.collectors()); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// register adds every collector to reg, or none of them.
func register(reg prometheus.Registerer, cs []prometheus.Collector) error {
	for i, c := range cs {
		if err := reg.Register(c); err != nil {
			for _, done := range cs[:i] {
				reg.Unregister(done)
			}
			return err
		}
	}
	return nil
}

func (in *Instrumented) collectors() []prometheus.Collector {
	return []prometheus.Collector{in.acquired, in.released, in.failures, in.held}
}

// Acquire forwards to the wrapped allocator.
func (in *Instrumented) Acquire(size int) ([]byte, error) {
	region, err := in.next.Acquire(size)
	if err != nil {
		in.failures.WithLabelValues("acquire").Inc()
		return nil, err
	}
	in.acquired.Inc()
	in.held.Add(float64(size))
	return region, nil
}

// Release forwards to the wrapped allocator.
func (in *Instrumented) Release(region []byte, size int) error {
	if err := in.next.Release(region, size); err != nil {
		in.failures.WithLabelValues("release").Inc()
		return err
	}
	in.released.Inc()
	in.held.Sub(float64(size))
	return nil
}
