package client

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK           = "ok"
	outcomeEncoding     = "encoding"
	refreshSucceeded    = "success"
	refreshMissing      = "missing"
	refreshRejected     = "rejected"
	refreshFailed       = "failed"
	metricsNamespace    = "grocery"
	metricsSubsystem    = "client"
	requestOutcomeLabel = "outcome"
	refreshResultLabel  = "result"
)

// Metrics counts request outcomes and token refreshes
type Metrics struct {
	Requests  *prometheus.CounterVec
	Refreshes *prometheus.CounterVec
}

func (m *Metrics) observe(err error) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeEncoding
		var requestError *RequestError
		if errors.As(err, &requestError) {
			outcome = requestError.Kind.String()
		}
	}
	m.Requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) refreshed(result string) {
	if m == nil {
		return
	}
	m.Refreshes.WithLabelValues(result).Inc()
}

// NewMetrics creates and registers client metrics
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	ret := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "API requests by outcome.",
		}, []string{requestOutcomeLabel}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "token_refresh_total",
			Help:      "Token refresh attempts by result.",
		}, []string{refreshResultLabel}),
	}
	if registerer == nil {
		return ret, nil
	}
	for _, collector := range []prometheus.Collector{ret.Requests, ret.Refreshes} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
