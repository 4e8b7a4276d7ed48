package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RankingHandler struct {
	uc usecase.RankingUsecase
}

func NewRankingHandler(uc usecase.RankingUsecase) *RankingHandler {
	return &RankingHandler{uc: uc}
}

func (h *RankingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/vacancies/:id/candidates", h.Candidates)
	r.Get("/profiles/:id/roles", h.Roles)
}

func rankingParams(c fiber.Ctx) (usecase.RankingParams, error) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return usecase.RankingParams{}, err
	}
	minScore, err := floatQuery(c, "min_score")
	if err != nil {
		return usecase.RankingParams{}, err
	}
	stretch, err := boolQuery(c, "include_stretch")
	if err != nil {
		return usecase.RankingParams{}, err
	}

	p := usecase.RankingParams{Limit: limit, IncludeStretch: stretch}
	if minScore != nil {
		p.MinScore = *minScore
	}
	return p, nil
}

func (h *RankingHandler) Candidates(c fiber.Ctx) error {
	vacancyID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	p, err := rankingParams(c)
	if err != nil {
		return err
	}

	res, err := h.uc.FindCandidates(c.Context(), vacancyID, p)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankingResponse(res.Items, res.Evaluated, res.Skipped))
}

func (h *RankingHandler) Roles(c fiber.Ctx) error {
	profileID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	p, err := rankingParams(c)
	if err != nil {
		return err
	}

	res, err := h.uc.FindRoles(c.Context(), profileID, p)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankingResponse(res.Items, res.Evaluated, res.Skipped))
}
