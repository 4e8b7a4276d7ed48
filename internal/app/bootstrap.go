package app

import (
	"context"
	"fmt"
	"strings"

	"talent-match/internal/config"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	v1 "talent-match/internal/delivery/http/routes/v1"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		ws.NewHandler(c.Hub, c.Logger).HandleMatchesWS,
		v1.Handlers{
			Skills:  handler.NewSkillHandler(c.SkillGraph),
			Matches: handler.NewMatchHandler(c.Matching),
			Ranking: handler.NewRankingHandler(c.Ranking),
		},
	).Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
