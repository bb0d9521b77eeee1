// Package telemetry carries the viewer's Prometheus metrics and OpenTelemetry tracing
package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the frame loop and stream server
type Collector struct {
	gatherer prometheus.Gatherer

	Frames        prometheus.Counter
	FrameDuration prometheus.Histogram
	SimDays       prometheus.Gauge
	Speed         prometheus.Gauge
	Paused        prometheus.Gauge
	StreamClients prometheus.Gauge
	StreamDropped prometheus.Counter
	Actions       *prometheus.CounterVec
}

// NewCollector registers metrics against the provided registerer, defaulting
// to the global Prometheus registry when nil
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_frames_total",
		Help: "Total number of frames stepped by the viewer loop.",
	}), "orrery_frames_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orrery_frame_duration_seconds",
		Help:    "Wall time spent stepping and rendering one frame.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0167, 0.025, 0.05, 0.1},
	}), "orrery_frame_duration_seconds")
	if err != nil {
		return nil, err
	}

	days, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_sim_days",
		Help: "Elapsed simulated days on the clock.",
	}), "orrery_sim_days")
	if err != nil {
		return nil, err
	}

	speed, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_speed_days_per_second",
		Help: "Effective clock speed in simulated days per real second.",
	}), "orrery_speed_days_per_second")
	if err != nil {
		return nil, err
	}

	paused, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_paused",
		Help: "1 while the clock is paused.",
	}), "orrery_paused")
	if err != nil {
		return nil, err
	}

	clients, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_stream_clients",
		Help: "Connected WebSocket stream clients.",
	}), "orrery_stream_clients")
	if err != nil {
		return nil, err
	}

	dropped, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_stream_frames_dropped_total",
		Help: "Snapshots not delivered because a client's queue was full.",
	}), "orrery_stream_frames_dropped_total")
	if err != nil {
		return nil, err
	}

	actions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_actions_total",
		Help: "User actions applied by the viewer, labeled by action name.",
	}, []string{"action"}), "orrery_actions_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Frames:        frames,
		FrameDuration: duration,
		SimDays:       days,
		Speed:         speed,
		Paused:        paused,
		StreamClients: clients,
		StreamDropped: dropped,
		Actions:       actions,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveFrame records one stepped frame and the clock state after it
// Safe on a nil collector so callers can run without metrics
func (c *Collector) ObserveFrame(seconds, days, speed float64, paused bool) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	c.FrameDuration.Observe(seconds)
	c.SimDays.Set(days)
	c.Speed.Set(speed)
	if paused {
		c.Paused.Set(1)
	} else {
		c.Paused.Set(0)
	}
}

// CountAction increments the per-action counter
func (c *Collector) CountAction(action string) {
	if c == nil {
		return
	}
	c.Actions.WithLabelValues(action).Inc()
}

// SetStreamClients records the live client count
func (c *Collector) SetStreamClients(n int) {
	if c == nil {
		return
	}
	c.StreamClients.Set(float64(n))
}

// AddDropped counts undelivered snapshots
func (c *Collector) AddDropped(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.StreamDropped.Add(float64(n))
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
