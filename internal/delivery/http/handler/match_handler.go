package handler

import (
	"strings"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/vacancy"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	matches := r.Group("/matches")
	matches.Get("/analytics", h.Analytics)
	matches.Get("/:profile_id/:vacancy_id", h.GetMatch)

	profiles := r.Group("/profiles")
	profiles.Post("/:id/gaps", h.AnalyzeGaps)
	profiles.Get("/:id/plan/:vacancy_id", h.DevelopmentPlan)
}

// GetMatch computes, explains and persists the match for one pair.
func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	profileID, err := uuidParam(c, "profile_id")
	if err != nil {
		return err
	}
	vacancyID, err := uuidParam(c, "vacancy_id")
	if err != nil {
		return err
	}

	res, err := h.uc.MatchPair(c.Context(), profileID, vacancyID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponse(res))
}

func (h *MatchHandler) AnalyzeGaps(c fiber.Ctx) error {
	profileID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.GapAnalysisRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("malformed body", err)
	}

	reqs := make(vacancy.RequirementSet, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		weight := 1.0
		if r.Weight != nil {
			weight = *r.Weight
		}
		reqs = append(reqs, vacancy.Requirement{
			SkillID:    r.SkillID,
			SkillName:  strings.TrimSpace(r.SkillName),
			MinLevel:   skill.Level(strings.ToLower(strings.TrimSpace(r.MinLevel))),
			Weight:     weight,
			IsCritical: r.IsCritical,
		})
	}

	gaps, err := h.uc.AnalyzeGaps(c.Context(), profileID, reqs)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewGapsResponse(gaps))
}

func (h *MatchHandler) DevelopmentPlan(c fiber.Ctx) error {
	profileID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	vacancyID, err := uuidParam(c, "vacancy_id")
	if err != nil {
		return err
	}

	plan, err := h.uc.DevelopmentPlan(c.Context(), profileID, vacancyID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDevelopmentPlanResponse(plan))
}

func (h *MatchHandler) Analytics(c fiber.Ctx) error {
	var vacancyID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("vacancy_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest("invalid vacancy_id", err)
		}
		vacancyID = &id
	}

	a, err := h.uc.Analytics(c.Context(), vacancyID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAnalyticsResponse(a))
}
