package seeder

import (
	"talent-match/internal/database"
	"talent-match/internal/embedding"
	"talent-match/internal/repository"
	appseeder "talent-match/internal/seeder"

	"go.uber.org/zap"
)

type Deps struct {
	DB        database.Querier
	Graph     SkillGraph
	Embedder  embedding.Provider
	Skills    repository.SkillRepository
	Profiles  repository.ProfileRepository
	Vacancies repository.VacancyRepository
	Workers   int
	Logger    *zap.Logger
}

// Defaults seeds the taxonomy first; vacancies and profiles reference its skills by name.
func Defaults(d Deps) []Seeder {
	return []Seeder{
		guarded{
			Seeder: TaxonomySeeder{Graph: d.Graph, Embedder: d.Embedder, Workers: d.Workers, Logger: d.Logger},
			db:     d.DB,
			tables: []tableColumns{
				{table: "skills", columns: []string{"id", "name", "name_key", "category", "parent_id", "path", "depth", "embedding"}},
				{table: "skill_relationships", columns: []string{"id", "from_skill_id", "to_skill_id", "relationship_type", "strength"}},
			},
		},
		guarded{
			Seeder: appseeder.VacancySeeder{Skills: d.Skills, Vacancies: d.Vacancies},
			db:     d.DB,
			tables: []tableColumns{
				{table: "vacancies", columns: []string{"id", "title", "department", "min_experience_years", "status", "is_active"}},
				{table: "vacancy_requirements", columns: []string{"vacancy_id", "skill_id", "min_level", "weight", "is_critical", "position"}},
			},
		},
		guarded{
			Seeder: appseeder.ProfileSeeder{Skills: d.Skills, Profiles: d.Profiles},
			db:     d.DB,
			tables: []tableColumns{
				{table: "profiles", columns: []string{"id", "name", "role_title", "department", "experience_years", "mobility_ready"}},
				{table: "profile_skills", columns: []string{"profile_id", "skill_id", "level"}},
			},
		},
	}
}
