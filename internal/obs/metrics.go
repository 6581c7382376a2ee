package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de requisições HTTP.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latência das requisições HTTP em segundos.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	tokensIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "acesso_tokens_issued_total",
		Help: "Total de tokens de acesso emitidos.",
	})

	accessDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acesso_decisions_total",
			Help: "Decisões de validação de acesso por desfecho.",
		},
		[]string{"outcome"},
	)
)

// Init registra as métricas no registro default.
func Init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, tokensIssuedTotal, accessDecisionsTotal)
}

// Handler expõe o endpoint Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}

// TokenIssued incrementa o contador de emissões.
func TokenIssued() {
	tokensIssuedTotal.Inc()
}

// AccessDecision incrementa o contador do desfecho informado.
func AccessDecision(outcome string) {
	accessDecisionsTotal.WithLabelValues(outcome).Inc()
}

// Instrument mede contagem e latência por rota.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.code)
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
