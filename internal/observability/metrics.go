// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// Metrics contains the credcheck Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Validations     *prometheus.CounterVec
	StrengthScores  *prometheus.CounterVec
	AuthAttempts    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers credcheck metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credcheck_validations_total",
				Help: "Total number of field validations by field and outcome",
			},
			[]string{"field", "outcome"},
		),
		StrengthScores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credcheck_strength_total",
				Help: "Total number of password strength scorings by label",
			},
			[]string{"label"},
		),
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credcheck_auth_attempts_total",
				Help: "Total number of registration and login attempts by status",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credcheck_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "code"},
		),
	}

	reg.MustRegister(m.Validations)
	reg.MustRegister(m.StrengthScores)
	reg.MustRegister(m.AuthAttempts)
	reg.MustRegister(m.RequestDuration)

	return m
}

// RecordValidation counts one validation of field.
func (m *Metrics) RecordValidation(field string, valid bool) {
	if m == nil {
		return
	}
	outcome := OutcomeInvalid
	if valid {
		outcome = OutcomeValid
	}
	m.Validations.WithLabelValues(field, outcome).Inc()
}

// RecordStrength counts one strength scoring.
func (m *Metrics) RecordStrength(label string) {
	if m == nil {
		return
	}
	m.StrengthScores.WithLabelValues(label).Inc()
}

// RecordAuthAttempt counts one registration or login.
// status is "success" or an error code.
func (m *Metrics) RecordAuthAttempt(operation, status string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(operation, status).Inc()
}

// ObserveRequest records how long a request to route took.
func (m *Metrics) ObserveRequest(route, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, code).Observe(d.Seconds())
}
