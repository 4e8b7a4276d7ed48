package seeder

import (
	"context"
	"errors"
	"fmt"

	"talent-match/internal/domain/skill"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

// seedNamespace keeps generated ids stable across runs, so reseeding updates rows in place.
var seedNamespace = uuid.MustParse("6f1c1f0e-8a63-4f3e-9a57-3c1d8d2f7b10")

func seedID(kind, key string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+key))
}

type SkillLookup interface {
	GetByName(ctx context.Context, name string) (skill.Skill, error)
}

// resolveSkills maps names to stored skills. Names that are not in the store are left out.
func resolveSkills(ctx context.Context, skills SkillLookup, names ...string) (map[string]skill.Skill, error) {
	out := make(map[string]skill.Skill, len(names))
	for _, name := range names {
		if _, ok := out[name]; ok {
			continue
		}
		s, err := skills.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("lookup skill %s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
