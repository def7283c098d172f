package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firestorm_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "firestorm_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firestorm_transactions_total",
		Help: "Wallet transactions recorded, by type and status.",
	}, []string{"type", "status"})

	PayoutSettlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firestorm_payout_settlements_total",
		Help: "Pending withdrawals settled by the payout poller, by outcome.",
	}, []string{"outcome"})
)

// Middleware records request counts and latency per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			HTTPRequestDuration.WithLabelValues(route).Observe(v)
			HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		}))
		defer timer.ObserveDuration()
		next.ServeHTTP(ww, r)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
