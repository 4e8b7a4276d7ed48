package matching

import (
	"fmt"
	"strings"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"
)

const strongSkillScore = 0.9

func StrengthsAndConcerns(p talent.Profile, v vacancy.Vacancy, matches []match.SkillMatch, gaps []match.SkillGap) ([]string, []string) {
	strengths := make([]string, 0, 3)
	concerns := make([]string, 0, 3)

	strong := make([]string, 0, 3)
	for _, m := range matches {
		if m.Score >= strongSkillScore && len(strong) < 3 {
			strong = append(strong, m.SkillName)
		}
	}
	if len(strong) > 0 {
		strengths = append(strengths, "strong command of key skills: "+strings.Join(strong, ", "))
	}

	required := v.RequiredExperience()
	if p.ExperienceYears > 0 && p.ExperienceYears > required {
		strengths = append(strengths, fmt.Sprintf("extensive experience (%g years)", p.ExperienceYears))
	}
	if p.Department != "" && p.Department == v.Department {
		strengths = append(strengths, "knows the department")
	}

	if names := gapNames(gaps, match.SeverityCritical, 2); len(names) > 0 {
		concerns = append(concerns, "critical skill gaps: "+strings.Join(names, ", "))
	}
	if names := gapNames(gaps, match.SeverityHigh, 2); len(names) > 0 {
		concerns = append(concerns, "significant gaps: "+strings.Join(names, ", "))
	}
	if p.ExperienceYears > 0 && p.ExperienceYears < required {
		concerns = append(concerns, "insufficient experience")
	}

	return strengths, concerns
}

func gapNames(gaps []match.SkillGap, sev match.Severity, limit int) []string {
	out := make([]string, 0, limit)
	for _, g := range gaps {
		if g.Severity != sev {
			continue
		}
		out = append(out, g.SkillName)
		if len(out) == limit {
			break
		}
	}
	return out
}

func Availability(p talent.Profile, now time.Time) string {
	if !p.MobilityReady {
		return "not ready to move"
	}
	if p.AvailableFrom == nil || !p.AvailableFrom.After(now) {
		return "available now"
	}
	return "available from " + p.AvailableFrom.UTC().Format("2006-01-02")
}
