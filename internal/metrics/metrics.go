package metrics

import "github.com/prometheus/client_golang/prometheus"

//go:generate mockgen -source=./metrics.go -destination=../mocks/counters/mock.go -package=countermocks

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	LogsReceived Counter

	HttpRequests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{
		counter: newCounterVec(name, help, labels),
	}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func newCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		LogsReceived: NewPrometheusCounter(
			reg,
			"logs_received_total",
			"Количество сохранённых логов",
			[]string{"service", "level"},
		),
		HttpRequests: NewPrometheusCounter(
			reg,
			"http_requests_total",
			"Количество HTTP запросов к API логов",
			[]string{"method", "status"},
		),
	}
}

func New() *Counters {
	return newCounters(prometheus.DefaultRegisterer)
}

// NewTestCounters registers on a private registry so tests can build as many as they need.
func NewTestCounters() *Counters {
	return newCounters(prometheus.NewRegistry())
}
