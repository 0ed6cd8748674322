package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/endocrino/emr/pkg/metrics"
)

// Metrics instruments every request with the Prometheus collector: request
// count, latency histogram, and an in-flight gauge. The route template
// (e.g. /api/v1/patients/:id) is used as the path label to keep
// cardinality bounded.
func Metrics(collector *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			collector.InFlightGauge.Inc()
			defer collector.InFlightGauge.Dec()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			collector.RequestsTotal.WithLabelValues(method, path, status).Inc()
			collector.RequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
