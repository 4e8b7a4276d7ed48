package matching

import (
	"strings"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"
)

const defaultConfidence = 0.5

// Confidence averages the available completeness factors: skill coverage, profile completeness
// and vacancy completeness. Nil sides contribute nothing.
func Confidence(p *talent.Profile, v *vacancy.Vacancy, matches []match.SkillMatch) float64 {
	factors := make([]float64, 0, 3)

	if len(matches) > 0 {
		known := 0
		for _, m := range matches {
			if m.CurrentLevel != nil {
				known++
			}
		}
		factors = append(factors, float64(known)/float64(len(matches)))
	}

	if p != nil {
		factors = append(factors, profileCompleteness(*p))
	}

	if v != nil {
		vc := 0.5
		if len(v.Requirements) > 0 {
			vc += 0.3
		}
		if v.MinExperienceYears != nil {
			vc += 0.2
		}
		factors = append(factors, vc)
	}

	if len(factors) == 0 {
		return defaultConfidence
	}
	var sum float64
	for _, f := range factors {
		sum += f
	}
	return clamp01(sum / float64(len(factors)))
}

func profileCompleteness(p talent.Profile) float64 {
	var c float64
	if strings.TrimSpace(p.Name) != "" {
		c += 0.2
	}
	if strings.TrimSpace(p.RoleTitle) != "" {
		c += 0.2
	}
	if p.ExperienceYears > 0 {
		c += 0.2
	}
	if len(p.Skills) > 0 {
		c += 0.2
	}
	if strings.TrimSpace(p.Department) != "" {
		c += 0.2
	}
	return c
}
