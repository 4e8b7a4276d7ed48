package handler

import (
	"strings"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/domain/skill"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillGraphUsecase
}

func NewSkillHandler(uc usecase.SkillGraphUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Post("/", h.Create)
	grp.Get("/search", h.Search)
	grp.Post("/relationships", h.AddRelationship)
	grp.Get("/:id/relationships", h.Relationships)
}

// Create answers 201 when the skill was created and 200 when the name already existed.
func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req dto.CreateSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("malformed body", err)
	}

	s, created, err := h.uc.CreateSkill(c.Context(), usecase.CreateSkillInput{
		Name:         req.Name,
		Category:     skill.Category(strings.ToLower(strings.TrimSpace(req.Category))),
		Description:  req.Description,
		ParentID:     req.ParentID,
		Popularity:   req.Popularity,
		MarketDemand: req.MarketDemand,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	if created {
		return response.Success(c, fiber.StatusCreated, "Skill created successfully", dto.NewSkillResponse(s))
	}
	return response.Success(c, fiber.StatusOK, "Skill already exists", dto.NewSkillResponse(s))
}

func (h *SkillHandler) Search(c fiber.Ctx) error {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return err
	}
	threshold, err := floatQuery(c, "threshold")
	if err != nil {
		return err
	}

	var categories []skill.Category
	for _, raw := range listQuery(c, "category") {
		categories = append(categories, skill.Category(strings.ToLower(raw)))
	}

	items, err := h.uc.SearchSkills(c.Context(), usecase.SearchSkillsParams{
		Query:      c.Query("q"),
		Limit:      limit,
		Threshold:  threshold,
		Categories: categories,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillSearchResponse(items))
}

func (h *SkillHandler) AddRelationship(c fiber.Ctx) error {
	var req dto.AddRelationshipRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("malformed body", err)
	}

	strength := 1.0
	if req.Strength != nil {
		strength = *req.Strength
	}

	rel, err := h.uc.AddRelationship(c.Context(), usecase.AddRelationshipInput{
		FromSkillID: req.FromSkillID,
		ToSkillID:   req.ToSkillID,
		Type:        skill.RelationshipType(strings.ToLower(strings.TrimSpace(req.Type))),
		Strength:    strength,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRelationshipResponse(rel))
}

func (h *SkillHandler) Relationships(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	includeReverse := true
	if c.Query("include_reverse") != "" {
		if includeReverse, err = boolQuery(c, "include_reverse"); err != nil {
			return err
		}
	}

	var types []skill.RelationshipType
	for _, raw := range listQuery(c, "types") {
		types = append(types, skill.RelationshipType(strings.ToLower(raw)))
	}

	groups, err := h.uc.GetRelationships(c.Context(), id, types, includeReverse)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRelationshipGroupsResponse(groups))
}
