// Package metrics instruments the RPC surface with Prometheus.
package metrics

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitpay_rpc_requests_total",
			Help: "RPC requests by procedure and result code.",
		},
		[]string{"procedure", "code"},
	)

	rpcDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "splitpay_rpc_duration_seconds",
			Help:    "RPC handling time by procedure.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)
)

// Interceptor returns a Connect interceptor that counts and times every
// RPC. The code label is "ok" for successes, the Connect code otherwise.
func Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = "unknown"
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
				}
			}
			rpcTotal.WithLabelValues(procedure, code).Inc()
			rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())

			return resp, err
		}
	}
}
