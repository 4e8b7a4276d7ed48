package matching

import (
	"errors"
	"fmt"

	"talent-match/internal/domain/vacancy"

	"github.com/google/uuid"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("validation failed")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidateRequirements rejects malformed requirement sets instead of coercing them.
// An empty set is valid and scores zero.
func ValidateRequirements(reqs vacancy.RequirementSet) error {
	if len(reqs) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(reqs))
	var total float64
	for i, r := range reqs {
		field := fmt.Sprintf("requirements[%d]", i)
		if r.SkillID == uuid.Nil {
			return invalid(field+".skill_id", "must be set")
		}
		if _, dup := seen[r.SkillID]; dup {
			return invalid(field+".skill_id", "duplicate skill %s", r.SkillID)
		}
		seen[r.SkillID] = struct{}{}

		if !r.MinLevel.Valid() {
			return invalid(field+".min_level", "unknown level %q", r.MinLevel)
		}
		if r.Weight < 0 || r.Weight > 1 {
			return invalid(field+".weight", "%.3f is outside [0,1]", r.Weight)
		}
		total += r.Weight
	}

	if total <= 0 {
		return invalid("requirements", "weights sum to zero")
	}
	return nil
}
