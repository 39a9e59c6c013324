// Package metrics defines the Prometheus collectors for the trip workflows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Email kinds, used as the "kind" label.
const (
	KindTripConfirmation      = "trip_confirmation"
	KindParticipantInvitation = "participant_invitation"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	TripsCreated          prometheus.Counter
	TripsConfirmed        prometheus.Counter
	ParticipantsConfirmed prometheus.Counter
	EmailsSent            *prometheus.CounterVec
	EmailsFailed          *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TripsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "planner_trips_created_total",
			Help: "Total number of trips created",
		}),
		TripsConfirmed: f.NewCounter(prometheus.CounterOpts{
			Name: "planner_trips_confirmed_total",
			Help: "Total number of trips moved from pending to confirmed",
		}),
		ParticipantsConfirmed: f.NewCounter(prometheus.CounterOpts{
			Name: "planner_participants_confirmed_total",
			Help: "Total number of invitees who confirmed attendance",
		}),
		EmailsSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_emails_sent_total",
			Help: "Emails accepted by the SMTP relay, by kind",
		}, []string{"kind"}),
		EmailsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_emails_failed_total",
			Help: "Emails the SMTP relay rejected or that could not be sent, by kind",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncTripsCreated() {
	if m != nil {
		m.TripsCreated.Inc()
	}
}

func (m *Metrics) IncTripsConfirmed() {
	if m != nil {
		m.TripsConfirmed.Inc()
	}
}

func (m *Metrics) IncParticipantsConfirmed() {
	if m != nil {
		m.ParticipantsConfirmed.Inc()
	}
}

// ObserveDelivery counts one send attempt of the given kind.
func (m *Metrics) ObserveDelivery(kind string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.EmailsFailed.WithLabelValues(kind).Inc()
		return
	}
	m.EmailsSent.WithLabelValues(kind).Inc()
}
