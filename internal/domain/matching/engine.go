package matching

import (
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"
)

// Engine computes a match between a profile and a vacancy. It performs no I/O.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// WithClock returns a copy of the engine using now as its time source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

func (e *Engine) Evaluate(p talent.Profile, v vacancy.Vacancy) (match.Result, error) {
	matches, gaps, err := AnalyzeGaps(p, v.Requirements)
	if err != nil {
		return match.Result{}, err
	}

	scores := match.Scores{
		HardSkill:  HardSkillScore(matches),
		SoftSkill:  SoftSkillScore(p),
		Experience: ExperienceScore(p.ExperienceYears, v.RequiredExperience()),
		CultureFit: CultureFitScore(p, v),
	}
	total := TotalScore(scores)
	mt := Classify(total)
	strengths, concerns := StrengthsAndConcerns(p, v, matches, gaps)

	now := e.clock()
	return match.Result{
		ProfileID:      p.ID,
		VacancyID:      v.ID,
		Scores:         scores,
		Total:          total,
		Type:           mt,
		SkillMatches:   matches,
		Gaps:           gaps,
		Confidence:     Confidence(&p, &v, matches),
		Recommendation: Recommend(mt, gaps),
		Strengths:      strengths,
		Concerns:       concerns,
		Availability:   Availability(p, now),
		ComputedAt:     now.UTC(),
	}, nil
}

func (e *Engine) clock() time.Time {
	if e == nil || e.now == nil {
		return time.Now()
	}
	return e.now()
}
