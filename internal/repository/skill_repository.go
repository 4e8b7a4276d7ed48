package repository

import (
	"context"
	"errors"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

var ErrNotFound = errors.New("not found")

const storeRetryAttempts = 3

type SkillSearchParams struct {
	Embedding  []float32
	Limit      int
	Threshold  float64
	Categories []skill.Category
}

type SkillRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	GetByName(ctx context.Context, name string) (skill.Skill, error)
	// Insert stores s unless a skill with the same case-insensitive name exists.
	// It reports whether a row was written.
	Insert(ctx context.Context, s skill.Skill) (bool, error)
	SearchSimilar(ctx context.Context, p SkillSearchParams) ([]skill.SearchResult, error)
	ListTrending(ctx context.Context, minDemand float64, limit int) ([]skill.Skill, error)
	Count(ctx context.Context) (int, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, name, category, description, parent_id, path, depth, popularity, market_demand, is_active, created_at, updated_at`

func scanSkill(row database.Row, extra ...any) (skill.Skill, error) {
	var s skill.Skill
	dest := []any{
		&s.ID, &s.Name, &s.Category, &s.Description, &s.ParentID, &s.Path, &s.Depth,
		&s.Popularity, &s.MarketDemand, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	s, err := scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			return skill.Skill{}, ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) GetByName(ctx context.Context, name string) (skill.Skill, error) {
	s, err := scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE name_key = $1`, skill.NameKey(name)))
	if err != nil {
		if database.IsNoRows(err) {
			return skill.Skill{}, ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) Insert(ctx context.Context, s skill.Skill) (bool, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now().UTC()
	var emb any
	if len(s.Embedding) > 0 {
		emb = pgvector.NewVector(s.Embedding)
	}

	var affected int64
	err := database.RetryTransient(ctx, storeRetryAttempts, func() error {
		var err error
		affected, err = r.db.Exec(ctx,
			`INSERT INTO skills (id, name, name_key, category, description, parent_id, path, depth, embedding,
				popularity, market_demand, is_active, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$13)
			 ON CONFLICT (name_key) DO NOTHING`,
			s.ID, s.Name, skill.NameKey(s.Name), s.Category, s.Description, s.ParentID, s.Path, s.Depth, emb,
			s.Popularity, s.MarketDemand, s.IsActive, now,
		)
		return err
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresSkillRepository) SearchSimilar(ctx context.Context, p SkillSearchParams) ([]skill.SearchResult, error) {
	if len(p.Embedding) == 0 || p.Limit <= 0 {
		return []skill.SearchResult{}, nil
	}

	var cats []string
	if len(p.Categories) > 0 {
		cats = make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			cats = append(cats, string(c))
		}
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`, 1 - (embedding <=> $1) AS similarity
		 FROM skills
		 WHERE is_active
		   AND embedding IS NOT NULL
		   AND ($2::text[] IS NULL OR category = ANY($2::text[]))
		   AND 1 - (embedding <=> $1) >= $3
		 ORDER BY embedding <=> $1 ASC, id ASC
		 LIMIT $4`,
		pgvector.NewVector(p.Embedding), cats, p.Threshold, p.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.SearchResult, 0, p.Limit)
	for rows.Next() {
		var sim float64
		s, err := scanSkill(rows, &sim)
		if err != nil {
			return nil, err
		}
		out = append(out, skill.SearchResult{Skill: s, Similarity: sim})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ListTrending(ctx context.Context, minDemand float64, limit int) ([]skill.Skill, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`
		 FROM skills
		 WHERE is_active AND market_demand > $1
		 ORDER BY market_demand DESC, id ASC
		 LIMIT $2`,
		minDemand, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0, limit)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM skills`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
