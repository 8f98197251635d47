package metrics

import (
	"net/http"
	"strconv"
	"time"

	"milling_aggregator/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names
const (
	MRFQSubmitted        = "rfq_submitted_total"
	MQuoteSubmitted      = "quote_submitted_total"
	MQuoteAccepted       = "quote_accepted_total"
	MQuoteSuperseded     = "quote_superseded_total"
	MPaymentRecorded     = "payment_recorded_total"
	MLifecycleConflicts  = "lifecycle_conflicts_total"
	MHTTPRequestDuration = "http_request_duration_seconds"
)

// Registry holds the Prometheus collectors of the service. It implements
// interfaces.ILifecycleMetrics.
type Registry struct {
	gatherer prometheus.Gatherer

	rfqSubmitted    prometheus.Counter
	quoteSubmitted  prometheus.Counter
	quoteAccepted   prometheus.Counter
	quoteSuperseded prometheus.Counter
	paymentRecorded prometheus.Counter
	conflicts       *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

var _ interfaces.ILifecycleMetrics = (*Registry)(nil)

// New registers all collectors on a fresh registry. The Go and process
// collectors are included so /metrics carries runtime stats as well.
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from gatherer.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Registry {
	counter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		reg.MustRegister(c)
		return c
	}

	r := &Registry{
		gatherer:        gatherer,
		rfqSubmitted:    counter(MRFQSubmitted, "Number of RFQs submitted."),
		quoteSubmitted:  counter(MQuoteSubmitted, "Number of quotes submitted."),
		quoteAccepted:   counter(MQuoteAccepted, "Number of quotes accepted."),
		quoteSuperseded: counter(MQuoteSuperseded, "Number of quotes superseded by an acceptance."),
		paymentRecorded: counter(MPaymentRecorded, "Number of payments recorded."),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MLifecycleConflicts,
			Help: "Number of lifecycle operations rejected with a conflict.",
		}, []string{"operation"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MHTTPRequestDuration,
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(r.conflicts, r.httpDuration)
	return r
}

func (r *Registry) RFQSubmitted()   { r.rfqSubmitted.Inc() }
func (r *Registry) QuoteSubmitted() { r.quoteSubmitted.Inc() }

func (r *Registry) QuoteAccepted(superseded int) {
	r.quoteAccepted.Inc()
	if superseded > 0 {
		r.quoteSuperseded.Add(float64(superseded))
	}
}

func (r *Registry) PaymentRecorded() { r.paymentRecorded.Inc() }

func (r *Registry) Conflict(operation string) {
	r.conflicts.WithLabelValues(operation).Inc()
}

// GinMiddleware observes request latency labelled by the matched route template.
func (r *Registry) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.httpDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
