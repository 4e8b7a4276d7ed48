package routes

import (
	"talent-match/internal/delivery/http/handler"
	v1 "talent-match/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     fiber.Handler
	v1     v1.Handlers
}

// NewRegistry collects the handlers mounted by Register. ws may be nil.
func NewRegistry(health *handler.HealthHandler, ws fiber.Handler, api v1.Handlers) *Registry {
	return &Registry{health: health, ws: ws, v1: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws/matches", r.ws)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}
