package matching

import (
	"fmt"
	"sort"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"
)

// SkillMatchScore is 1.0 when current meets required, current/required below that, and 0 for an absent skill.
func SkillMatchScore(current *skill.Level, required skill.Level) float64 {
	if current == nil {
		return 0
	}
	cur := current.Ordinal()
	req := required.Ordinal()
	if cur <= 0 {
		return 0
	}
	if req <= 0 || cur >= req {
		return 1
	}
	return float64(cur) / float64(req)
}

// GapSeverity classifies how far current falls short of required.
func GapSeverity(current *skill.Level, required skill.Level, critical bool) match.Severity {
	if current == nil {
		switch {
		case critical:
			return match.SeverityCritical
		case required == skill.LevelAdvanced || required == skill.LevelExpert:
			return match.SeverityHigh
		default:
			return match.SeverityMedium
		}
	}

	gap := required.Ordinal() - current.Ordinal()
	switch {
	case gap <= 0:
		return match.SeverityNone
	case gap == 1:
		return match.SeverityLow
	case gap == 2:
		return match.SeverityMedium
	case critical:
		return match.SeverityCritical
	default:
		return match.SeverityHigh
	}
}

// AnalyzeGaps compares a profile against a requirement set. Matches follow requirement order;
// gaps exclude severity none and are ordered most severe first.
func AnalyzeGaps(p talent.Profile, reqs vacancy.RequirementSet) ([]match.SkillMatch, []match.SkillGap, error) {
	if err := ValidateRequirements(reqs); err != nil {
		return nil, nil, err
	}
	for id, s := range p.Skills {
		if s.Level != "" && !s.Level.Valid() {
			return nil, nil, invalid(fmt.Sprintf("skills[%s].level", id), "unknown level %q", s.Level)
		}
	}

	matches := make([]match.SkillMatch, 0, len(reqs))
	gaps := make([]match.SkillGap, 0)
	for _, r := range reqs {
		current := p.LevelOf(r.SkillID)
		name := r.SkillName
		if name == "" {
			name = p.Skills[r.SkillID].SkillName
		}

		matches = append(matches, match.SkillMatch{
			SkillID:       r.SkillID,
			SkillName:     name,
			RequiredLevel: r.MinLevel,
			CurrentLevel:  current,
			Weight:        r.Weight,
			IsCritical:    r.IsCritical,
			Score:         SkillMatchScore(current, r.MinLevel),
		})

		sev := GapSeverity(current, r.MinLevel, r.IsCritical)
		if sev == match.SeverityNone {
			continue
		}
		gaps = append(gaps, match.SkillGap{
			SkillID:       r.SkillID,
			SkillName:     name,
			RequiredLevel: r.MinLevel,
			CurrentLevel:  current,
			Severity:      sev,
			IsCritical:    r.IsCritical,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Severity.Rank() > gaps[j].Severity.Rank()
	})

	return matches, gaps, nil
}
