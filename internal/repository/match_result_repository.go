package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

type MatchResultFilter struct {
	VacancyID *uuid.UUID
	From      *time.Time
	To        *time.Time
}

type MatchResultRepository interface {
	// Upsert stores r keyed by (profile, vacancy). Concurrent writers race; the last write wins.
	Upsert(ctx context.Context, r match.Result) error
	List(ctx context.Context, f MatchResultFilter) ([]match.Result, error)
}

type PostgresMatchResultRepository struct {
	db database.DB
}

func NewPostgresMatchResultRepository(db database.DB) *PostgresMatchResultRepository {
	return &PostgresMatchResultRepository{db: db}
}

func (r *PostgresMatchResultRepository) Upsert(ctx context.Context, m match.Result) error {
	if m.ProfileID == uuid.Nil || m.VacancyID == uuid.Nil {
		return nil
	}
	if m.ComputedAt.IsZero() {
		m.ComputedAt = time.Now().UTC()
	}

	gaps := m.Gaps
	if gaps == nil {
		gaps = []match.SkillGap{}
	}
	gapsJSON, err := json.Marshal(gaps)
	if err != nil {
		return fmt.Errorf("encode gaps: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO match_results (id, profile_id, vacancy_id, score_hard_skill, score_soft_skill, score_experience,
			score_culture_fit, score_total, match_type, gaps, confidence, recommendation, strengths, concerns,
			availability, explanation, computed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		 ON CONFLICT (profile_id, vacancy_id) DO UPDATE SET
			score_hard_skill = EXCLUDED.score_hard_skill,
			score_soft_skill = EXCLUDED.score_soft_skill,
			score_experience = EXCLUDED.score_experience,
			score_culture_fit = EXCLUDED.score_culture_fit,
			score_total = EXCLUDED.score_total,
			match_type = EXCLUDED.match_type,
			gaps = EXCLUDED.gaps,
			confidence = EXCLUDED.confidence,
			recommendation = EXCLUDED.recommendation,
			strengths = EXCLUDED.strengths,
			concerns = EXCLUDED.concerns,
			availability = EXCLUDED.availability,
			explanation = EXCLUDED.explanation,
			computed_at = EXCLUDED.computed_at`,
		uuid.New(),
		m.ProfileID,
		m.VacancyID,
		m.Scores.HardSkill,
		m.Scores.SoftSkill,
		m.Scores.Experience,
		m.Scores.CultureFit,
		m.Total,
		m.Type,
		string(gapsJSON),
		m.Confidence,
		m.Recommendation,
		nonNil(m.Strengths),
		nonNil(m.Concerns),
		m.Availability,
		m.Explanation,
		m.ComputedAt,
	)
	return err
}

func (r *PostgresMatchResultRepository) List(ctx context.Context, f MatchResultFilter) ([]match.Result, error) {
	rows, err := r.db.Query(ctx,
		`SELECT profile_id, vacancy_id, score_hard_skill, score_soft_skill, score_experience, score_culture_fit,
			score_total, match_type, gaps, confidence, recommendation, strengths, concerns, availability,
			explanation, computed_at
		 FROM match_results
		 WHERE ($1::uuid IS NULL OR vacancy_id = $1)
		   AND ($2::timestamptz IS NULL OR computed_at >= $2)
		   AND ($3::timestamptz IS NULL OR computed_at <= $3)
		 ORDER BY computed_at DESC, profile_id ASC`,
		f.VacancyID, f.From, f.To,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Result, 0)
	for rows.Next() {
		var m match.Result
		var gapsJSON []byte
		if err := rows.Scan(
			&m.ProfileID, &m.VacancyID,
			&m.Scores.HardSkill, &m.Scores.SoftSkill, &m.Scores.Experience, &m.Scores.CultureFit,
			&m.Total, &m.Type, &gapsJSON, &m.Confidence, &m.Recommendation, &m.Strengths, &m.Concerns,
			&m.Availability, &m.Explanation, &m.ComputedAt,
		); err != nil {
			return nil, err
		}
		if len(gapsJSON) > 0 {
			if err := json.Unmarshal(gapsJSON, &m.Gaps); err != nil {
				return nil, fmt.Errorf("decode gaps: %w", err)
			}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
