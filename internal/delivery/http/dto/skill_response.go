package dto

import (
	"time"

	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

type CreateSkillRequest struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	ParentID     *uuid.UUID `json:"parent_id"`
	Popularity   float64    `json:"popularity"`
	MarketDemand float64    `json:"market_demand"`
}

type AddRelationshipRequest struct {
	FromSkillID uuid.UUID `json:"from_skill_id"`
	ToSkillID   uuid.UUID `json:"to_skill_id"`
	Type        string    `json:"relationship_type"`
	Strength    *float64  `json:"strength"`
}

type SkillResponse struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Category     skill.Category `json:"category"`
	Description  string         `json:"description,omitempty"`
	ParentID     *uuid.UUID     `json:"parent_id,omitempty"`
	Path         string         `json:"path"`
	Depth        int            `json:"depth"`
	Popularity   float64        `json:"popularity"`
	MarketDemand float64        `json:"market_demand"`
	IsActive     bool           `json:"is_active"`
	HasEmbedding bool           `json:"has_embedding"`
	CreatedAt    time.Time      `json:"created_at"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{
		ID:           s.ID,
		Name:         s.Name,
		Category:     s.Category,
		Description:  s.Description,
		ParentID:     s.ParentID,
		Path:         s.Path,
		Depth:        s.Depth,
		Popularity:   s.Popularity,
		MarketDemand: s.MarketDemand,
		IsActive:     s.IsActive,
		HasEmbedding: len(s.Embedding) > 0,
		CreatedAt:    s.CreatedAt,
	}
}

type SkillSearchResponse struct {
	SkillResponse
	Similarity float64 `json:"similarity"`
}

func NewSkillSearchResponse(items []skill.SearchResult) []SkillSearchResponse {
	out := make([]SkillSearchResponse, 0, len(items))
	for _, it := range items {
		out = append(out, SkillSearchResponse{SkillResponse: NewSkillResponse(it.Skill), Similarity: it.Similarity})
	}
	return out
}

type RelationshipResponse struct {
	ID          uuid.UUID              `json:"id"`
	FromSkillID uuid.UUID              `json:"from_skill_id"`
	ToSkillID   uuid.UUID              `json:"to_skill_id"`
	Type        skill.RelationshipType `json:"relationship_type"`
	Strength    float64                `json:"strength"`
	CreatedAt   time.Time              `json:"created_at"`
}

func NewRelationshipResponse(r skill.Relationship) RelationshipResponse {
	return RelationshipResponse{
		ID:          r.ID,
		FromSkillID: r.FromSkillID,
		ToSkillID:   r.ToSkillID,
		Type:        r.Type,
		Strength:    r.Strength,
		CreatedAt:   r.CreatedAt,
	}
}

type RelatedSkillResponse struct {
	RelationshipID uuid.UUID       `json:"relationship_id"`
	SkillID        uuid.UUID       `json:"skill_id"`
	SkillName      string          `json:"skill_name"`
	Category       skill.Category  `json:"category,omitempty"`
	Strength       float64         `json:"strength"`
	Direction      skill.Direction `json:"direction"`
}

func NewRelationshipGroupsResponse(groups skill.RelationshipGroups) map[string][]RelatedSkillResponse {
	out := make(map[string][]RelatedSkillResponse, len(groups))
	for key, items := range groups {
		rows := make([]RelatedSkillResponse, 0, len(items))
		for _, it := range items {
			rows = append(rows, RelatedSkillResponse{
				RelationshipID: it.RelationshipID,
				SkillID:        it.SkillID,
				SkillName:      it.SkillName,
				Category:       it.Category,
				Strength:       it.Strength,
				Direction:      it.Direction,
			})
		}
		out[key] = rows
	}
	return out
}
