package repository

import (
	"context"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRelationshipRepository interface {
	// Upsert writes rel keyed by (from, to, type); an existing edge only has its strength updated.
	Upsert(ctx context.Context, rel skill.Relationship) (skill.Relationship, error)
	ListOutgoing(ctx context.Context, skillID uuid.UUID, types []skill.RelationshipType) ([]skill.RelatedSkill, error)
	ListIncoming(ctx context.Context, skillID uuid.UUID, types []skill.RelationshipType) ([]skill.RelatedSkill, error)
}

type PostgresSkillRelationshipRepository struct {
	db database.DB
}

func NewPostgresSkillRelationshipRepository(db database.DB) *PostgresSkillRelationshipRepository {
	return &PostgresSkillRelationshipRepository{db: db}
}

func (r *PostgresSkillRelationshipRepository) Upsert(ctx context.Context, rel skill.Relationship) (skill.Relationship, error) {
	if rel.ID == uuid.Nil {
		rel.ID = uuid.New()
	}
	now := time.Now().UTC()

	err := database.RetryTransient(ctx, storeRetryAttempts, func() error {
		return r.db.QueryRow(ctx,
			`INSERT INTO skill_relationships (id, from_skill_id, to_skill_id, relationship_type, strength, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$6)
			 ON CONFLICT (from_skill_id, to_skill_id, relationship_type) DO UPDATE SET
				strength = EXCLUDED.strength,
				updated_at = EXCLUDED.updated_at
			 RETURNING id, created_at`,
			rel.ID, rel.FromSkillID, rel.ToSkillID, rel.Type, rel.Strength, now,
		).Scan(&rel.ID, &rel.CreatedAt)
	})
	if err != nil {
		return skill.Relationship{}, err
	}
	return rel, nil
}

func (r *PostgresSkillRelationshipRepository) ListOutgoing(ctx context.Context, skillID uuid.UUID, types []skill.RelationshipType) ([]skill.RelatedSkill, error) {
	return r.list(ctx,
		`SELECT r.id, s.id, s.name, s.category, r.relationship_type, r.strength
		 FROM skill_relationships r
		 JOIN skills s ON s.id = r.to_skill_id
		 WHERE r.from_skill_id = $1 AND ($2::text[] IS NULL OR r.relationship_type = ANY($2::text[]))
		 ORDER BY r.relationship_type ASC, r.strength DESC, s.name ASC`,
		skillID, types, skill.DirectionOutgoing)
}

func (r *PostgresSkillRelationshipRepository) ListIncoming(ctx context.Context, skillID uuid.UUID, types []skill.RelationshipType) ([]skill.RelatedSkill, error) {
	return r.list(ctx,
		`SELECT r.id, s.id, s.name, s.category, r.relationship_type, r.strength
		 FROM skill_relationships r
		 JOIN skills s ON s.id = r.from_skill_id
		 WHERE r.to_skill_id = $1 AND ($2::text[] IS NULL OR r.relationship_type = ANY($2::text[]))
		 ORDER BY r.relationship_type ASC, r.strength DESC, s.name ASC`,
		skillID, types, skill.DirectionIncoming)
}

func (r *PostgresSkillRelationshipRepository) list(ctx context.Context, query string, skillID uuid.UUID, types []skill.RelationshipType, dir skill.Direction) ([]skill.RelatedSkill, error) {
	var filter []string
	if len(types) > 0 {
		filter = make([]string, 0, len(types))
		for _, t := range types {
			filter = append(filter, string(t))
		}
	}

	rows, err := r.db.Query(ctx, query, skillID, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.RelatedSkill, 0)
	for rows.Next() {
		rs := skill.RelatedSkill{Direction: dir}
		if err := rows.Scan(&rs.RelationshipID, &rs.SkillID, &rs.SkillName, &rs.Category, &rs.Type, &rs.Strength); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
