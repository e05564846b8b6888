package metrics

import (
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "ems_client"

// Collector records outgoing API calls on its own registry so several
// clients in one process never collide on metric names.
type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transportErrors *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "API calls by operation and response status.",
			},
			[]string{"operation", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "API call round-trip duration.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		transportErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transport_errors_total",
				Help:      "API calls that never produced a response.",
			},
			[]string{"operation"},
		),
	}
	c.registry.MustRegister(c.requestsTotal, c.requestDuration, c.transportErrors)
	return c
}

// Record stores a completed call. status 0 means the request never got a
// response.
func (c *Collector) Record(operation string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	if status == 0 {
		c.transportErrors.WithLabelValues(operation).Inc()
	} else {
		c.requestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	}
	c.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

type Line struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot flattens counters and histogram counts into sorted lines.
func (c *Collector) Snapshot() ([]Line, error) {
	if c == nil {
		return nil, nil
	}
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}
	var lines []Line
	for _, family := range families {
		for _, m := range family.GetMetric() {
			line := Line{Name: family.GetName(), Labels: labels(m)}
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				line.Value = m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				line.Name += "_count"
				line.Value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			lines = append(lines, line)
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
	return lines, nil
}

func labels(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, pair := range m.GetLabel() {
		out[pair.GetName()] = pair.GetValue()
	}
	return out
}
