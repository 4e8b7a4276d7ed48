package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talent-match/internal/database"
	"talent-match/internal/domain/skill"
	"talent-match/internal/embedding"
	"talent-match/internal/repository"
	"talent-match/internal/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultSearchLimit     = 10
	maxSearchLimit         = 100
	defaultSearchThreshold = 0.7
)

type SkillGraphUsecase interface {
	CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, bool, error)
	AddRelationship(ctx context.Context, in AddRelationshipInput) (skill.Relationship, error)
	GetRelationships(ctx context.Context, skillID uuid.UUID, types []skill.RelationshipType, includeReverse bool) (skill.RelationshipGroups, error)
	SearchSkills(ctx context.Context, p SearchSkillsParams) ([]skill.SearchResult, error)
}

type CreateSkillInput struct {
	Name         string
	Category     skill.Category
	Description  string
	ParentID     *uuid.UUID
	Popularity   float64
	MarketDemand float64
}

type AddRelationshipInput struct {
	FromSkillID uuid.UUID
	ToSkillID   uuid.UUID
	Type        skill.RelationshipType
	Strength    float64
}

type SearchSkillsParams struct {
	Query string
	Limit int
	// Threshold defaults to 0.7 when nil.
	Threshold  *float64
	Categories []skill.Category
}

type SkillGraph struct {
	skills   repository.SkillRepository
	rels     repository.SkillRelationshipRepository
	embedder embedding.Provider
	cache    SearchCache
	logger   *zap.Logger

	creates singleflight.Group
}

type createOutcome struct {
	skill   skill.Skill
	created bool
}

// NewSkillGraph wires the skill store to an embedder. cache may be nil.
func NewSkillGraph(skills repository.SkillRepository, rels repository.SkillRelationshipRepository, embedder embedding.Provider, cache SearchCache, logger *zap.Logger) *SkillGraph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillGraph{
		skills:   skills,
		rels:     rels,
		embedder: embedder,
		cache:    cache,
		logger:   logger.Named("skill_graph"),
	}
}

// CreateSkill returns the existing skill when the name is already taken, case-insensitively.
// The boolean reports whether this call created the skill.
func (u *SkillGraph) CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, bool, error) {
	in.Name = strings.Join(strings.Fields(in.Name), " ")
	if in.Name == "" {
		return skill.Skill{}, false, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return skill.Skill{}, false, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if in.Popularity < 0 || in.MarketDemand < 0 {
		return skill.Skill{}, false, fmt.Errorf("%w: popularity and market demand must not be negative", ErrInvalidInput)
	}

	// Callers for the same name share one creation. It runs detached from any single caller's
	// context, and only the caller that ran it may report the skill as created.
	leader := false
	ch := u.creates.DoChan(skill.NameKey(in.Name), func() (any, error) {
		leader = true
		return u.createSkill(context.WithoutCancel(ctx), in)
	})
	select {
	case <-ctx.Done():
		return skill.Skill{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return skill.Skill{}, false, res.Err
		}
		out := res.Val.(createOutcome)
		return out.skill, out.created && leader, nil
	}
}

func (u *SkillGraph) createSkill(ctx context.Context, in CreateSkillInput) (createOutcome, error) {
	existing, err := u.skills.GetByName(ctx, in.Name)
	if err == nil {
		return createOutcome{skill: existing}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return createOutcome{}, fmt.Errorf("lookup skill: %w", err)
	}

	var parent *skill.Skill
	if in.ParentID != nil {
		p, err := u.skills.GetByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return createOutcome{}, fmt.Errorf("%w: parent %s", ErrSkillNotFound, in.ParentID)
			}
			return createOutcome{}, fmt.Errorf("lookup parent: %w", err)
		}
		parent = &p
	}
	path, depth := skill.Hierarchy(in.Name, parent)

	s := skill.Skill{
		ID:           uuid.New(),
		Name:         in.Name,
		Category:     in.Category,
		Description:  strings.TrimSpace(in.Description),
		ParentID:     in.ParentID,
		Path:         path,
		Depth:        depth,
		Popularity:   in.Popularity,
		MarketDemand: in.MarketDemand,
		IsActive:     true,
	}

	if u.embedder != nil {
		vec, err := u.embedder.Embed(ctx, skill.EmbeddingText(s.Name, s.Description, s.Category))
		if err != nil {
			u.logger.Warn("skill stored without embedding", zap.String("skill", s.Name), zap.Error(err))
		} else {
			s.Embedding = vec
		}
	}

	inserted, err := u.skills.Insert(ctx, s)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return createOutcome{}, fmt.Errorf("%w: parent %s", ErrSkillNotFound, in.ParentID)
		}
		return createOutcome{}, fmt.Errorf("insert skill: %w", err)
	}

	// A concurrent writer may have won the name; either way the stored row is authoritative.
	stored, err := u.skills.GetByName(ctx, in.Name)
	if err != nil {
		return createOutcome{}, fmt.Errorf("reload skill: %w", err)
	}
	if inserted {
		u.invalidateSearch(ctx)
		u.logger.Info("skill created",
			zap.String("skill_id", stored.ID.String()),
			zap.String("name", stored.Name),
			zap.String("path", stored.Path),
		)
	}
	return createOutcome{skill: stored, created: inserted && stored.ID == s.ID}, nil
}

func (u *SkillGraph) AddRelationship(ctx context.Context, in AddRelationshipInput) (skill.Relationship, error) {
	if in.FromSkillID == uuid.Nil || in.ToSkillID == uuid.Nil {
		return skill.Relationship{}, fmt.Errorf("%w: both skill ids are required", ErrInvalidInput)
	}
	if in.FromSkillID == in.ToSkillID {
		return skill.Relationship{}, fmt.Errorf("%w: a skill cannot relate to itself", ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return skill.Relationship{}, fmt.Errorf("%w: unknown relationship type %q", ErrInvalidInput, in.Type)
	}
	if in.Strength < 0 || in.Strength > 1 {
		return skill.Relationship{}, fmt.Errorf("%w: strength must be within [0,1]", ErrInvalidInput)
	}

	rel, err := u.rels.Upsert(ctx, skill.Relationship{
		FromSkillID: in.FromSkillID,
		ToSkillID:   in.ToSkillID,
		Type:        in.Type,
		Strength:    in.Strength,
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return skill.Relationship{}, ErrSkillNotFound
		}
		return skill.Relationship{}, fmt.Errorf("upsert relationship: %w", err)
	}
	return rel, nil
}

// GetRelationships groups outgoing edges by type and, when includeReverse is set,
// incoming edges under skill.ReverseKey(type).
func (u *SkillGraph) GetRelationships(ctx context.Context, skillID uuid.UUID, types []skill.RelationshipType, includeReverse bool) (skill.RelationshipGroups, error) {
	for _, t := range types {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown relationship type %q", ErrInvalidInput, t)
		}
	}
	if _, err := u.skills.GetByID(ctx, skillID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("lookup skill: %w", err)
	}

	groups := make(skill.RelationshipGroups)
	out, err := u.rels.ListOutgoing(ctx, skillID, types)
	if err != nil {
		return nil, fmt.Errorf("list outgoing: %w", err)
	}
	for _, r := range out {
		key := string(r.Type)
		groups[key] = append(groups[key], r)
	}

	if includeReverse {
		in, err := u.rels.ListIncoming(ctx, skillID, types)
		if err != nil {
			return nil, fmt.Errorf("list incoming: %w", err)
		}
		for _, r := range in {
			key := skill.ReverseKey(r.Type)
			groups[key] = append(groups[key], r)
		}
	}
	return groups, nil
}

// SearchSkills never fails because the embedding backend is down; it returns an empty list instead.
func (u *SkillGraph) SearchSkills(ctx context.Context, p SearchSkillsParams) ([]skill.SearchResult, error) {
	q := search.ProcessQuery(p.Query)
	if q.Normalized == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if p.Limit <= 0 {
		p.Limit = defaultSearchLimit
	}
	if p.Limit > maxSearchLimit {
		p.Limit = maxSearchLimit
	}
	threshold := defaultSearchThreshold
	if p.Threshold != nil {
		threshold = *p.Threshold
	}
	if threshold < -1 || threshold > 1 {
		return nil, fmt.Errorf("%w: threshold must be within [-1,1]", ErrInvalidInput)
	}
	for _, c := range p.Categories {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c)
		}
	}

	key := SkillSearchCacheKey(q.Normalized, p.Limit, threshold, p.Categories)
	if u.cache != nil {
		var cached []skill.SearchResult
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if u.embedder == nil {
		return []skill.SearchResult{}, nil
	}
	vec, err := u.embedder.Embed(ctx, q.Expanded)
	if err != nil {
		u.logger.Warn("semantic search degraded to empty result", zap.String("query", q.Normalized), zap.Error(err))
		return []skill.SearchResult{}, nil
	}

	results, err := u.skills.SearchSimilar(ctx, repository.SkillSearchParams{
		Embedding:  vec,
		Limit:      p.Limit,
		Threshold:  threshold,
		Categories: p.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("search skills: %w", err)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, results, skillSearchCacheTTL); err != nil {
			u.logger.Debug("search cache write failed", zap.Error(err))
		}
	}
	return results, nil
}

func (u *SkillGraph) invalidateSearch(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, skillSearchPrefix+"*"); err != nil {
		u.logger.Debug("search cache invalidation failed", zap.Error(err))
	}
}
