package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"eduPlatformReco/business/recommend"
	"eduPlatformReco/domain"
	"eduPlatformReco/pkg/logger"
	"eduPlatformReco/pkg/metrics"

	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case domain.IsOutOfRange(err):
		return http.StatusNotFound
	case domain.IsInvalidInput(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, recommend.ErrUnknownDataset):
		return http.StatusNotFound
	case errors.Is(err, recommend.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "path", c.Path(), "request_id", c.Get("request_id"))
	}
	return c.JSON(code, ResponseError{Message: err.Error()})
}

// Instrumented records latency and request counts for route.
func Instrumented(route string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
		}

		metrics.RecommendLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		metrics.RecommendRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		return err
	}
}
