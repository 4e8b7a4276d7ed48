package matching

import "talent-match/internal/domain/match"

const (
	thresholdExact     = 0.9
	thresholdPartial   = 0.7
	thresholdPotential = 0.5
)

// Classify maps a total score to its tier; the first threshold reached wins.
func Classify(total float64) match.Type {
	switch {
	case total >= thresholdExact:
		return match.TypeExact
	case total >= thresholdPartial:
		return match.TypePartial
	case total >= thresholdPotential:
		return match.TypePotential
	default:
		return match.TypeStretch
	}
}

func Recommend(t match.Type, gaps []match.SkillGap) match.Recommendation {
	switch t {
	case match.TypeExact:
		return match.RecommendExcellentFit
	case match.TypePartial:
		return match.RecommendGoodFit
	case match.TypePotential:
		for _, g := range gaps {
			if g.Severity == match.SeverityCritical {
				return match.RecommendCriticalFirst
			}
		}
		return match.RecommendDevelopable
	default:
		return match.RecommendNotAdvised
	}
}
