package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "geoclock"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	ticks          prom.Counter
	transitions    *prom.CounterVec
	areaExits      prom.Counter
	rejectedStarts prom.Counter
	positionErrors prom.Counter
	running        prom.Gauge
	inside         prom.Gauge
	elapsed        prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg uses a fresh private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		ticks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Timer ticks counted while running",
		}),
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Timer state transitions by reason",
		}, []string{"reason"}),
		areaExits: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "area_exits_total",
			Help:      "Forced stops caused by leaving the area",
		}),
		rejectedStarts: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_starts_total",
			Help:      "Start requests rejected while outside the area",
		}),
		positionErrors: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "position_errors_total",
			Help:      "Errors reported by the position source",
		}),
		running: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "timer_running",
			Help:      "1 while the timer is running",
		}),
		inside: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "inside_area",
			Help:      "1 while the device is inside the area",
		}),
		elapsed: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "elapsed_seconds",
			Help:      "Elapsed seconds of the current run",
		}),
	}
	reg.MustRegister(
		pr.ticks, pr.transitions, pr.areaExits, pr.rejectedStarts,
		pr.positionErrors, pr.running, pr.inside, pr.elapsed,
	)
	return pr
}

func (p *PrometheusRecorder) IncTick() {
	if p == nil {
		return
	}
	p.ticks.Inc()
}

func (p *PrometheusRecorder) IncTransition(reason string) {
	if p == nil {
		return
	}
	p.transitions.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) IncAreaExit() {
	if p == nil {
		return
	}
	p.areaExits.Inc()
}

func (p *PrometheusRecorder) IncRejectedStart() {
	if p == nil {
		return
	}
	p.rejectedStarts.Inc()
}

func (p *PrometheusRecorder) IncPositionError() {
	if p == nil {
		return
	}
	p.positionErrors.Inc()
}

func (p *PrometheusRecorder) SetRunning(running bool) {
	if p == nil {
		return
	}
	p.running.Set(boolValue(running))
}

func (p *PrometheusRecorder) SetInside(inside bool) {
	if p == nil {
		return
	}
	p.inside.Set(boolValue(inside))
}

func (p *PrometheusRecorder) SetElapsed(seconds uint64) {
	if p == nil {
		return
	}
	p.elapsed.Set(float64(seconds))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var _ Recorder = (*PrometheusRecorder)(nil)
