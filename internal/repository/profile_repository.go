package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/talent"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (talent.Profile, error)
	// ListEligibleIDs returns active, mobility-ready profiles ordered by id.
	ListEligibleIDs(ctx context.Context) ([]uuid.UUID, error)
	Upsert(ctx context.Context, p talent.Profile) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (talent.Profile, error) {
	var p talent.Profile
	err := r.db.QueryRow(ctx,
		`SELECT id, name, role_title, department, location, experience_years, departments_worked,
			is_active, mobility_ready, available_from
		 FROM profiles
		 WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.RoleTitle, &p.Department, &p.Location, &p.ExperienceYears, &p.DepartmentsWorked,
		&p.IsActive, &p.MobilityReady, &p.AvailableFrom)
	if err != nil {
		if database.IsNoRows(err) {
			return talent.Profile{}, ErrNotFound
		}
		return talent.Profile{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT ps.skill_id, s.name, ps.level, ps.experience_years
		 FROM profile_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.profile_id = $1`,
		id,
	)
	if err != nil {
		return talent.Profile{}, err
	}
	defer rows.Close()

	p.Skills = make(map[uuid.UUID]talent.SkillLevel)
	for rows.Next() {
		var sl talent.SkillLevel
		if err := rows.Scan(&sl.SkillID, &sl.SkillName, &sl.Level, &sl.ExperienceYears); err != nil {
			return talent.Profile{}, err
		}
		p.Skills[sl.SkillID] = sl
	}
	if err := rows.Err(); err != nil {
		return talent.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) ListEligibleIDs(ctx context.Context) ([]uuid.UUID, error) {
	return listIDs(ctx, r.db, `SELECT id FROM profiles WHERE is_active AND mobility_ready ORDER BY id ASC`)
}

// Upsert replaces the profile row and its skill levels in one transaction.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p talent.Profile) error {
	if p.ID == uuid.Nil {
		return nil
	}
	worked := p.DepartmentsWorked
	if worked == nil {
		worked = []string{}
	}

	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO profiles (id, name, role_title, department, location, experience_years, departments_worked,
				is_active, mobility_ready, available_from)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			 ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				role_title = EXCLUDED.role_title,
				department = EXCLUDED.department,
				location = EXCLUDED.location,
				experience_years = EXCLUDED.experience_years,
				departments_worked = EXCLUDED.departments_worked,
				is_active = EXCLUDED.is_active,
				mobility_ready = EXCLUDED.mobility_ready,
				available_from = EXCLUDED.available_from`,
			p.ID, p.Name, p.RoleTitle, p.Department, p.Location, p.ExperienceYears, worked,
			p.IsActive, p.MobilityReady, p.AvailableFrom,
		)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM profile_skills WHERE profile_id = $1`, p.ID); err != nil {
			return err
		}
		for _, s := range p.Skills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO profile_skills (profile_id, skill_id, level, experience_years) VALUES ($1,$2,$3,$4)`,
				p.ID, s.SkillID, s.Level, s.ExperienceYears,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func listIDs(ctx context.Context, db database.DB, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
