package v1

import (
	"talent-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Skills  *handler.SkillHandler
	Matches *handler.MatchHandler
	Ranking *handler.RankingHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Skills != nil {
		h.Skills.RegisterRoutes(r)
	}
	if h.Matches != nil {
		h.Matches.RegisterRoutes(r)
	}
	if h.Ranking != nil {
		h.Ranking.RegisterRoutes(r)
	}
}
