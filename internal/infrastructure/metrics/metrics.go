// Package metrics agrupa los colectores Prometheus del servicio.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics colectores HTTP y de dominio.
type Metrics struct {
	ReqTotal   *prometheus.CounterVec
	ReqDur     *prometheus.HistogramVec
	Imports    *prometheus.CounterVec
	ImportRows *prometheus.CounterVec
	Documents  *prometheus.CounterVec
}

// New registra los colectores en reg (nil = registro por defecto).
// Registrar dos veces con el mismo namespace reutiliza los colectores existentes.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "Latencia de peticiones HTTP en milisegundos.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		Imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_import_total",
			Help:      "Importaciones de entradas de stock por formato y resultado.",
		}, []string{"format", "result"}),
		ImportRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_import_rows_total",
			Help:      "Filas importadas por desenlace (valid, error).",
		}, []string{"outcome"}),
		Documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_documents_total",
			Help:      "Documentos cotizados por modo (lenient, strict).",
		}, []string{"mode"}),
	}
	mustRegister(reg, &m.ReqTotal, &m.Imports, &m.ImportRows, &m.Documents)
	mustRegisterHistogram(reg, &m.ReqDur)
	return m
}

// ObserveRequest registra una petición HTTP terminada.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.ReqTotal.WithLabelValues(method, route, fmt.Sprint(status)).Inc()
	m.ReqDur.WithLabelValues(method, route).Observe(float64(d) / float64(time.Millisecond))
}

// ObserveImport registra una importación con su cantidad de filas válidas y con error.
func (m *Metrics) ObserveImport(format, result string, valid, failed int) {
	if m == nil {
		return
	}
	m.Imports.WithLabelValues(format, result).Inc()
	m.ImportRows.WithLabelValues("valid").Add(float64(valid))
	m.ImportRows.WithLabelValues("error").Add(float64(failed))
}

// ObserveDocument registra un documento cotizado.
func (m *Metrics) ObserveDocument(strict bool) {
	if m == nil {
		return
	}
	mode := "lenient"
	if strict {
		mode = "strict"
	}
	m.Documents.WithLabelValues(mode).Inc()
}

func mustRegister(reg prometheus.Registerer, counters ...**prometheus.CounterVec) {
	for _, c := range counters {
		if err := reg.Register(*c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(fmt.Errorf("register counter: %w", err))
			}
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				*c = existing
			}
		}
	}
}

func mustRegisterHistogram(reg prometheus.Registerer, h **prometheus.HistogramVec) {
	if err := reg.Register(*h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(fmt.Errorf("register histogram: %w", err))
		}
		if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
			*h = existing
		}
	}
}
