package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	dataDir     string
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, dataDir string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, dataDir: dataDir}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking that the data directory is
// writable, since every store mutation rewrites a file there.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	probe := filepath.Join(h.dataDir, ".ready_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "data directory not writable",
				"details": fiber.Map{"data_dir": err.Error()},
			},
		})
	}
	_ = os.Remove(probe)

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": fiber.Map{"data_dir": "ok"},
	})
}
