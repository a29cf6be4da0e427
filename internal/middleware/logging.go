package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/atcommodities/erp/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs and counts every RPC call.
// It logs the procedure name, operator ID, duration, and any error codes/messages.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			operatorID := GetOperatorID(ctx) // empty unless RequireAuth runs first
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"operator_id", operatorID,
						"duration_ms", elapsed.Milliseconds(),
					)
				} else {
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"operator_id", operatorID,
						"duration_ms", elapsed.Milliseconds(),
					)
				}
				metrics.ObserveRPC(procedure, connect.CodeOf(err).String(), elapsed)
			} else {
				slog.Info("RPC ok",
					"procedure", procedure,
					"operator_id", operatorID,
					"duration_ms", elapsed.Milliseconds(),
				)
				metrics.ObserveRPC(procedure, "ok", elapsed)
			}

			return resp, err
		}
	}
}

// RequestLogger logs all incoming plain HTTP requests.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
