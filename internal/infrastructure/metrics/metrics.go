// Package metrics expõe as métricas Prometheus do mercadinho.
//
// As métricas HTTP são coletadas por Middleware; as de negócio são
// incrementadas pelos serviços de venda e reposição. Register deve ser
// chamado uma vez na subida da API, e Handler publicado em /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mercadinho"

var (
	// RequestDuration mede a duração das requisições por método, rota e status
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duração das requisições HTTP em segundos.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// SalesTotal conta as vendas registradas por forma de pagamento
	SalesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "created_total",
			Help:      "Vendas registradas.",
		},
		[]string{"payment_type"},
	)

	// SalesRejected conta as vendas recusadas por motivo
	SalesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sales",
			Name:      "rejected_total",
			Help:      "Vendas recusadas na validação ou na gravação.",
		},
		[]string{"reason"},
	)

	// ReplenishmentTotal conta os disparos de reposição por resultado
	// (skipped, restocked, failed) e origem (automatic, manual)
	ReplenishmentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "replenishment",
			Name:      "total",
			Help:      "Disparos de reposição de estoque.",
		},
		[]string{"trigger", "outcome"},
	)

	registerOnce sync.Once
)

// Register registra as métricas no registry padrão
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestDuration,
			SalesTotal,
			SalesRejected,
			ReplenishmentTotal,
			collectors.NewBuildInfoCollector(),
		)
	})
}

// Handler publica as métricas no formato do Prometheus
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware mede a duração de cada requisição
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "não mapeada"
		}
		status := c.Writer.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RequestDuration.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	}
}
