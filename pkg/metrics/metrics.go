package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores de la API sobre un registry propio
// (varias apps en el mismo proceso, p. ej. tests, no colisionan).
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestCounter  *prometheus.CounterVec
	ErrorCounter    *prometheus.CounterVec
	DomainErrors    *prometheus.CounterVec
	StockMovements  *prometheus.CounterVec
}

// New registra los colectores bajo el namespace dado.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path"},
		),
		ErrorCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API responses with status >= 400",
			},
			[]string{"method", "path", "status"},
		),
		DomainErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "domain_errors_total",
				Help:      "Errors returned by use cases, by kind",
			},
			[]string{"kind"},
		),
		StockMovements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "warehouse_movements_total",
				Help:      "Warehouse movements registered, by type",
			},
			[]string{"type"},
		),
	}
	reg.MustRegister(
		m.RequestDuration, m.RequestCounter, m.ErrorCounter, m.DomainErrors, m.StockMovements,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry expone el registry (tests y exportadores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware mide cada request. El path es la ruta registrada, no la URL, para acotar cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		code := strconv.Itoa(status)

		m.RequestCounter.WithLabelValues(method, path).Inc()
		m.RequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		if status >= 400 {
			m.ErrorCounter.WithLabelValues(method, path, code).Inc()
		}
		return err
	}
}

// RecordDomainError incrementa domain_errors_total para la clase de error.
func (m *Metrics) RecordDomainError(kind string) {
	if m == nil || kind == "" {
		return
	}
	m.DomainErrors.WithLabelValues(kind).Inc()
}

// RecordMovement incrementa warehouse_movements_total.
func (m *Metrics) RecordMovement(movementType string) {
	if m == nil {
		return
	}
	m.StockMovements.WithLabelValues(movementType).Inc()
}

// Handler sirve /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
