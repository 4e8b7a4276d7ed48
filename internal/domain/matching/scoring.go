package matching

import (
	"math"
	"strings"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"
)

// Component weights of the total score. They sum to 1.0.
const (
	WeightHardSkill  = 0.40
	WeightSoftSkill  = 0.20
	WeightExperience = 0.25
	WeightCultureFit = 0.15
)

const criticalWeightMultiplier = 2.0

// HardSkillScore is the weighted average of per-skill scores; critical requirements count double.
func HardSkillScore(matches []match.SkillMatch) float64 {
	var weighted, total float64
	for _, m := range matches {
		w := m.Weight
		if m.IsCritical {
			w *= criticalWeightMultiplier
		}
		weighted += m.Score * w
		total += w
	}
	if total <= 0 {
		return 0
	}
	return clamp01(weighted / total)
}

// ExperienceScore rewards excess years with diminishing returns and floors shortfalls at 0.2.
func ExperienceScore(profileYears, requiredYears float64) float64 {
	if profileYears <= 0 {
		return 0.3
	}
	if requiredYears < 0 {
		requiredYears = 0
	}
	if profileYears >= requiredYears {
		bonus := math.Min(0.3, (profileYears-requiredYears)*0.05)
		return math.Min(1.0, 0.8+bonus)
	}
	return math.Max(0.2, profileYears/requiredYears*0.7)
}

func SoftSkillScore(p talent.Profile) float64 {
	score := 0.7
	if p.ExperienceYears > 2 {
		score += 0.1
	}
	if strings.Contains(strings.ToLower(p.RoleTitle), "lead") {
		score += 0.15
	}
	if len(p.DepartmentsWorked) > 1 {
		score += 0.1
	}
	return math.Min(1.0, score)
}

func CultureFitScore(p talent.Profile, v vacancy.Vacancy) float64 {
	score := 0.75
	if p.Department != "" && p.Department == v.Department {
		score += 0.1
	}
	if p.Location != "" && p.Location == v.Location {
		score += 0.05
	}
	if p.MobilityReady {
		score += 0.1
	}
	return math.Min(1.0, score)
}

// TotalScore is the fixed linear combination of the four components.
func TotalScore(s match.Scores) float64 {
	return WeightHardSkill*s.HardSkill +
		WeightSoftSkill*s.SoftSkill +
		WeightExperience*s.Experience +
		WeightCultureFit*s.CultureFit
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
