package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-directory/internal/observability"
	"github.com/spec-kit/user-directory/internal/repository"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	driver      string
	store       repository.Pinger
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance. store may be nil when the
// configured driver has nothing to probe.
func NewHealthHandler(serviceName, version, driver string, store repository.Pinger, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		driver:      driver,
		store:       store,
		metrics:     metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by probing the store.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			depStatus[h.driver] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "DEPENDENCY_UNAVAILABLE",
					"message": "store unavailable",
					"details": depStatus,
				},
			})
		}
	}
	depStatus[h.driver] = "ok"

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": depStatus,
	})
}

// Metrics dumps the in-memory request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
