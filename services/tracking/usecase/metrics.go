package usecase

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the tracking domain counters. A nil *Metrics records nothing.
type Metrics struct {
	locationReports   *prometheus.CounterVec
	sessionsStarted   prometheus.Counter
	sessionsEnded     *prometheus.CounterVec
	broadcastFailures *prometheus.CounterVec
}

// NewMetrics registers the tracking collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		locationReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_location_reports_total",
			Help: "Driver location reports by outcome.",
		}, []string{"result"}),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracking_sessions_started_total",
			Help: "Tracking sessions opened.",
		}),
		sessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_sessions_ended_total",
			Help: "Tracking sessions closed by terminal state.",
		}, []string{"state"}),
		broadcastFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_broadcast_failures_total",
			Help: "Trip channel operations that could not be handed off.",
		}, []string{"event"}),
	}
	reg.MustRegister(m.locationReports, m.sessionsStarted, m.sessionsEnded, m.broadcastFailures)
	return m
}

func (m *Metrics) locationReport(result string) {
	if m != nil {
		m.locationReports.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) sessionStarted() {
	if m != nil {
		m.sessionsStarted.Inc()
	}
}

func (m *Metrics) sessionEnded(state string) {
	if m != nil {
		m.sessionsEnded.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) broadcastFailed(event string) {
	if m != nil {
		m.broadcastFailures.WithLabelValues(event).Inc()
	}
}
