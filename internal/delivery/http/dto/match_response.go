package dto

import (
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

type ScoresResponse struct {
	HardSkill  float64 `json:"hard_skill"`
	SoftSkill  float64 `json:"soft_skill"`
	Experience float64 `json:"experience"`
	CultureFit float64 `json:"culture_fit"`
}

type SkillMatchResponse struct {
	SkillID       uuid.UUID    `json:"skill_id"`
	SkillName     string       `json:"skill_name"`
	RequiredLevel skill.Level  `json:"required_level"`
	CurrentLevel  *skill.Level `json:"current_level,omitempty"`
	Weight        float64      `json:"weight"`
	IsCritical    bool         `json:"is_critical"`
	Score         float64      `json:"score"`
}

type MatchResultResponse struct {
	ProfileID      uuid.UUID            `json:"profile_id"`
	VacancyID      uuid.UUID            `json:"vacancy_id"`
	TotalScore     float64              `json:"total_score"`
	MatchType      match.Type           `json:"match_type"`
	Scores         ScoresResponse       `json:"scores"`
	SkillMatches   []SkillMatchResponse `json:"skill_matches"`
	Gaps           []match.SkillGap     `json:"gaps"`
	Confidence     float64              `json:"confidence"`
	Recommendation string               `json:"recommendation"`
	Strengths      []string             `json:"strengths"`
	Concerns       []string             `json:"concerns"`
	Availability   string               `json:"availability"`
	Explanation    string               `json:"explanation,omitempty"`
	ComputedAt     time.Time            `json:"computed_at"`
}

func NewMatchResultResponse(r match.Result) MatchResultResponse {
	out := MatchResultResponse{
		ProfileID:  r.ProfileID,
		VacancyID:  r.VacancyID,
		TotalScore: r.Total,
		MatchType:  r.Type,
		Scores: ScoresResponse{
			HardSkill:  r.Scores.HardSkill,
			SoftSkill:  r.Scores.SoftSkill,
			Experience: r.Scores.Experience,
			CultureFit: r.Scores.CultureFit,
		},
		SkillMatches:   make([]SkillMatchResponse, 0, len(r.SkillMatches)),
		Gaps:           NewGapsResponse(r.Gaps),
		Confidence:     r.Confidence,
		Recommendation: string(r.Recommendation),
		Strengths:      nonNilStrings(r.Strengths),
		Concerns:       nonNilStrings(r.Concerns),
		Availability:   r.Availability,
		Explanation:    r.Explanation,
		ComputedAt:     r.ComputedAt,
	}
	for _, sm := range r.SkillMatches {
		out.SkillMatches = append(out.SkillMatches, SkillMatchResponse{
			SkillID:       sm.SkillID,
			SkillName:     sm.SkillName,
			RequiredLevel: sm.RequiredLevel,
			CurrentLevel:  sm.CurrentLevel,
			Weight:        sm.Weight,
			IsCritical:    sm.IsCritical,
			Score:         sm.Score,
		})
	}
	return out
}

type RankedMatchResponse struct {
	Rank      int                 `json:"rank"`
	SubjectID uuid.UUID           `json:"subject_id"`
	Match     MatchResultResponse `json:"match"`
}

type RankingResponse struct {
	Items     []RankedMatchResponse `json:"items"`
	Evaluated int                   `json:"evaluated"`
	Skipped   int                   `json:"skipped"`
}

func NewRankingResponse(items []match.Ranked, evaluated, skipped int) RankingResponse {
	out := RankingResponse{
		Items:     make([]RankedMatchResponse, 0, len(items)),
		Evaluated: evaluated,
		Skipped:   skipped,
	}
	for _, it := range items {
		out.Items = append(out.Items, RankedMatchResponse{
			Rank:      it.Rank,
			SubjectID: it.SubjectID,
			Match:     NewMatchResultResponse(it.Result),
		})
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func NewGapsResponse(g []match.SkillGap) []match.SkillGap {
	if g == nil {
		return []match.SkillGap{}
	}
	return g
}
