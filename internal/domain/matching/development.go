package matching

import (
	"sort"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

const (
	planGapLimit      = 5
	planTrendingLimit = 3
	planLimit         = 10

	// TrendingDemand is the market demand above which a skill counts as trending.
	TrendingDemand = 7.0

	trendingPriority = 3
	trendingWeeks    = 8
)

var levelWeeks = map[skill.Level]int{
	skill.LevelNovice:       0,
	skill.LevelBeginner:     4,
	skill.LevelIntermediate: 12,
	skill.LevelAdvanced:     24,
	skill.LevelExpert:       48,
}

type DevelopmentRecommendation struct {
	SkillID        uuid.UUID
	SkillName      string
	CurrentLevel   *skill.Level
	TargetLevel    skill.Level
	Priority       int
	EstimatedWeeks int
	Reason         string
	Trending       bool
}

// PriorityOf maps critical to 1 through none to 5.
func PriorityOf(s match.Severity) int {
	return 5 - s.Rank()
}

// LearningWeeks estimates the time to move from current (nil means novice) to target, at least two weeks.
func LearningWeeks(current *skill.Level, target skill.Level) int {
	from := skill.LevelNovice
	if current != nil && current.Valid() {
		from = *current
	}
	w := levelWeeks[target] - levelWeeks[from]
	if w < 2 {
		return 2
	}
	return w
}

// DevelopmentPlan turns the most severe gaps and trending skills into prioritized recommendations.
func DevelopmentPlan(gaps []match.SkillGap, trending []skill.Skill) []DevelopmentRecommendation {
	ordered := make([]match.SkillGap, len(gaps))
	copy(ordered, gaps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity.Rank() > ordered[j].Severity.Rank()
	})
	if len(ordered) > planGapLimit {
		ordered = ordered[:planGapLimit]
	}

	covered := make(map[uuid.UUID]struct{}, len(gaps))
	for _, g := range gaps {
		covered[g.SkillID] = struct{}{}
	}

	out := make([]DevelopmentRecommendation, 0, len(ordered)+planTrendingLimit)
	for _, g := range ordered {
		out = append(out, DevelopmentRecommendation{
			SkillID:        g.SkillID,
			SkillName:      g.SkillName,
			CurrentLevel:   g.CurrentLevel,
			TargetLevel:    g.RequiredLevel,
			Priority:       PriorityOf(g.Severity),
			EstimatedWeeks: LearningWeeks(g.CurrentLevel, g.RequiredLevel),
			Reason:         "closes a " + string(g.Severity) + " gap for the role",
		})
	}

	added := 0
	for _, s := range trending {
		if added == planTrendingLimit {
			break
		}
		if !s.IsActive || s.MarketDemand <= TrendingDemand {
			continue
		}
		if _, ok := covered[s.ID]; ok {
			continue
		}
		covered[s.ID] = struct{}{}
		out = append(out, DevelopmentRecommendation{
			SkillID:        s.ID,
			SkillName:      s.Name,
			TargetLevel:    skill.LevelIntermediate,
			Priority:       trendingPriority,
			EstimatedWeeks: trendingWeeks,
			Reason:         "in high market demand",
			Trending:       true,
		})
		added++
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	if len(out) > planLimit {
		out = out[:planLimit]
	}
	return out
}
