package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/vacancy"

	"github.com/google/uuid"
)

type VacancyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (vacancy.Vacancy, error)
	// ListOpenIDs returns active, open vacancies ordered by id.
	ListOpenIDs(ctx context.Context) ([]uuid.UUID, error)
	Upsert(ctx context.Context, v vacancy.Vacancy) error
}

type PostgresVacancyRepository struct {
	db database.DB
}

func NewPostgresVacancyRepository(db database.DB) *PostgresVacancyRepository {
	return &PostgresVacancyRepository{db: db}
}

func (r *PostgresVacancyRepository) GetByID(ctx context.Context, id uuid.UUID) (vacancy.Vacancy, error) {
	var v vacancy.Vacancy
	err := r.db.QueryRow(ctx,
		`SELECT id, title, department, location, min_experience_years, status, is_active, created_at
		 FROM vacancies
		 WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Title, &v.Department, &v.Location, &v.MinExperienceYears, &v.Status, &v.IsActive, &v.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return vacancy.Vacancy{}, ErrNotFound
		}
		return vacancy.Vacancy{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT vr.skill_id, s.name, vr.min_level, vr.weight, vr.is_critical
		 FROM vacancy_requirements vr
		 JOIN skills s ON s.id = vr.skill_id
		 WHERE vr.vacancy_id = $1
		 ORDER BY vr.position ASC, s.name ASC`,
		id,
	)
	if err != nil {
		return vacancy.Vacancy{}, err
	}
	defer rows.Close()

	v.Requirements = make(vacancy.RequirementSet, 0)
	for rows.Next() {
		var req vacancy.Requirement
		if err := rows.Scan(&req.SkillID, &req.SkillName, &req.MinLevel, &req.Weight, &req.IsCritical); err != nil {
			return vacancy.Vacancy{}, err
		}
		v.Requirements = append(v.Requirements, req)
	}
	if err := rows.Err(); err != nil {
		return vacancy.Vacancy{}, err
	}
	return v, nil
}

func (r *PostgresVacancyRepository) ListOpenIDs(ctx context.Context) ([]uuid.UUID, error) {
	return listIDs(ctx, r.db, `SELECT id FROM vacancies WHERE is_active AND status = 'open' ORDER BY id ASC`)
}

func (r *PostgresVacancyRepository) Upsert(ctx context.Context, v vacancy.Vacancy) error {
	if v.ID == uuid.Nil {
		return nil
	}
	status := v.Status
	if status == "" {
		status = vacancy.StatusOpen
	}

	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO vacancies (id, title, department, location, min_experience_years, status, is_active)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				department = EXCLUDED.department,
				location = EXCLUDED.location,
				min_experience_years = EXCLUDED.min_experience_years,
				status = EXCLUDED.status,
				is_active = EXCLUDED.is_active`,
			v.ID, v.Title, v.Department, v.Location, v.MinExperienceYears, status, v.IsActive,
		)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM vacancy_requirements WHERE vacancy_id = $1`, v.ID); err != nil {
			return err
		}
		for i, req := range v.Requirements {
			if _, err := tx.Exec(ctx,
				`INSERT INTO vacancy_requirements (vacancy_id, skill_id, min_level, weight, is_critical, position)
				 VALUES ($1,$2,$3,$4,$5,$6)`,
				v.ID, req.SkillID, req.MinLevel, req.Weight, req.IsCritical, i,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
