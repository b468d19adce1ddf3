package server

import (
	"time"

	"github.com/Brownie44l1/httpd/internal/logger"
	"github.com/Brownie44l1/httpd/internal/request"
	"github.com/Brownie44l1/httpd/internal/response"
	"github.com/Brownie44l1/httpd/internal/router"
)

// LoggingMiddleware logs all requests
func LoggingMiddleware(log logger.Logger) router.Middleware {
	return func(next router.Handler) router.Handler {
		return func(req *request.Request) (*response.Response, error) {
			start := time.Now()

			resp, err := next(req)
			if err != nil {
				// reported by the connection loop
				return nil, err
			}

			log.Debug("request handled",
				logger.F("method", req.Method),
				logger.F("path", req.Path),
				logger.F("status", int(resp.StatusCode)),
				logger.F("duration_ms", time.Since(start).Milliseconds()),
			)
			return resp, nil
		}
	}
}

// MetricsMiddleware records request metrics
func MetricsMiddleware(metrics *Metrics) router.Middleware {
	return func(next router.Handler) router.Handler {
		return func(req *request.Request) (*response.Response, error) {
			start := time.Now()

			resp, err := next(req)
			if err != nil {
				return nil, err
			}

			metrics.RecordRequest(resp.StatusCode, time.Since(start))
			return resp, nil
		}
	}
}
