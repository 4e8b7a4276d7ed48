package dto

import (
	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

// RequirementRequest is one entry of a gap-analysis body. SkillName is optional.
type RequirementRequest struct {
	SkillID    uuid.UUID `json:"skill_id"`
	SkillName  string    `json:"skill_name"`
	MinLevel   string    `json:"min_level"`
	Weight     *float64  `json:"weight"`
	IsCritical bool      `json:"is_critical"`
}

type GapAnalysisRequest struct {
	Requirements []RequirementRequest `json:"requirements"`
}

type GapCountResponse struct {
	SkillName string `json:"skill_name"`
	Count     int    `json:"count"`
}

type ScoreRangesResponse struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
}

type AnalyticsResponse struct {
	TotalMatches      int                 `json:"total_matches"`
	AverageScore      float64             `json:"average_score"`
	MatchDistribution map[match.Type]int  `json:"match_distribution"`
	CommonGaps        []GapCountResponse  `json:"common_gaps"`
	ScoreRanges       ScoreRangesResponse `json:"score_ranges"`
}

func NewAnalyticsResponse(a matching.Analytics) AnalyticsResponse {
	out := AnalyticsResponse{
		TotalMatches:      a.TotalMatches,
		AverageScore:      a.AverageScore,
		MatchDistribution: a.Distribution,
		CommonGaps:        make([]GapCountResponse, 0, len(a.TopGaps)),
		ScoreRanges: ScoreRangesResponse{
			Excellent: a.ScoreRanges.Excellent,
			Good:      a.ScoreRanges.Good,
			Fair:      a.ScoreRanges.Fair,
			Poor:      a.ScoreRanges.Poor,
		},
	}
	if out.MatchDistribution == nil {
		out.MatchDistribution = map[match.Type]int{}
	}
	for _, g := range a.TopGaps {
		out.CommonGaps = append(out.CommonGaps, GapCountResponse{SkillName: g.SkillName, Count: g.Count})
	}
	return out
}

type DevelopmentItemResponse struct {
	SkillID        uuid.UUID    `json:"skill_id"`
	SkillName      string       `json:"skill_name"`
	CurrentLevel   *skill.Level `json:"current_level,omitempty"`
	TargetLevel    skill.Level  `json:"target_level"`
	Priority       int          `json:"priority"`
	EstimatedWeeks int          `json:"estimated_weeks"`
	Reason         string       `json:"reason"`
	Trending       bool         `json:"trending"`
}

func NewDevelopmentPlanResponse(items []matching.DevelopmentRecommendation) []DevelopmentItemResponse {
	out := make([]DevelopmentItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, DevelopmentItemResponse{
			SkillID:        it.SkillID,
			SkillName:      it.SkillName,
			CurrentLevel:   it.CurrentLevel,
			TargetLevel:    it.TargetLevel,
			Priority:       it.Priority,
			EstimatedWeeks: it.EstimatedWeeks,
			Reason:         it.Reason,
			Trending:       it.Trending,
		})
	}
	return out
}
