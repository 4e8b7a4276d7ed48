package handler

import (
	"context"
	"time"

	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsReporter is optionally implemented by a Pinger to expose pool usage.
type StatsReporter interface {
	Stats() dbpostgres.PoolStats
}

type healthResponse struct {
	Database string                `json:"database"`
	Pool     *dbpostgres.PoolStats `json:"pool,omitempty"`
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

// Check reports 503 when the store does not answer a ping within two seconds.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if h.db == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, healthResponse{Database: "unknown"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unavailable", healthResponse{Database: "down"})
	}
	out := healthResponse{Database: "up"}
	if sr, ok := h.db.(StatsReporter); ok {
		st := sr.Stats()
		out.Pool = &st
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
