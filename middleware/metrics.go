package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"salesdash/metrics"
)

// Metrics records request count and latency per route pattern.
func Metrics(c *fiber.Ctx) error {
	start := time.Now()
	metrics.HTTPRequestsInFlight.Inc()
	defer metrics.HTTPRequestsInFlight.Dec()

	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	path := c.Route().Path
	metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
	return err
}
