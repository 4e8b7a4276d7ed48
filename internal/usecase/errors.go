package usecase

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrVacancyNotFound = errors.New("vacancy not found")
	ErrSkillNotFound   = errors.New("skill not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
)
