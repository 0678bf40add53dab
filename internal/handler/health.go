package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(env string) echo.HandlerFunc {
	started := time.Now()
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(started).Seconds(),
			"environment": env,
		})
	}
}
