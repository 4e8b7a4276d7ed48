package handler

import (
	"errors"
	"strconv"
	"strings"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/matching"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type reasonData struct {
	Reason string `json:"reason"`
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrVacancyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Vacancy not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, matching.ErrValidation):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageUnprocessableEntity, reasonData{Reason: err.Error()}, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func badRequest(reason string, cause error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, reasonData{Reason: reason}, cause)
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, badRequest("invalid "+name, err)
	}
	return id, nil
}

func intQuery(c fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("invalid "+name, err)
	}
	return n, nil
}

func floatQuery(c fiber.Ctx, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, badRequest("invalid "+name, err)
	}
	return &f, nil
}

func boolQuery(c fiber.Ctx, name string) (bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, badRequest("invalid "+name, err)
	}
	return b, nil
}

// listQuery splits a comma separated query value.
func listQuery(c fiber.Ctx, name string) []string {
	var out []string
	for _, part := range strings.Split(c.Query(name), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
