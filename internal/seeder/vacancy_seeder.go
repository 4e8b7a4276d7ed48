package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/vacancy"
	"talent-match/internal/repository"
)

type requirementSeed struct {
	Skill    string
	Level    skill.Level
	Weight   float64
	Critical bool
}

type vacancySeed struct {
	Title         string
	Department    string
	Location      string
	MinExperience *float64
	Requirements  []requirementSeed
}

func years(v float64) *float64 { return &v }

var vacancySeeds = []vacancySeed{
	{
		Title: "Backend Engineer (Go)", Department: "Platform", Location: "Jakarta", MinExperience: years(3),
		Requirements: []requirementSeed{
			{Skill: "Go", Level: skill.LevelAdvanced, Weight: 1, Critical: true},
			{Skill: "PostgreSQL", Level: skill.LevelIntermediate, Weight: 0.8, Critical: true},
			{Skill: "Docker", Level: skill.LevelIntermediate, Weight: 0.6},
			{Skill: "REST APIs", Level: skill.LevelAdvanced, Weight: 0.7},
			{Skill: "Redis", Level: skill.LevelBeginner, Weight: 0.3},
		},
	},
	{
		Title: "Data Engineer", Department: "Data", Location: "Surabaya", MinExperience: years(2),
		Requirements: []requirementSeed{
			{Skill: "Python", Level: skill.LevelAdvanced, Weight: 1, Critical: true},
			{Skill: "SQL", Level: skill.LevelAdvanced, Weight: 0.9, Critical: true},
			{Skill: "Data Engineering", Level: skill.LevelIntermediate, Weight: 0.8},
			{Skill: "AWS", Level: skill.LevelBeginner, Weight: 0.4},
		},
	},
	{
		Title: "Site Reliability Engineer", Department: "Infrastructure", Location: "Remote", MinExperience: years(4),
		Requirements: []requirementSeed{
			{Skill: "Kubernetes", Level: skill.LevelAdvanced, Weight: 1, Critical: true},
			{Skill: "Docker", Level: skill.LevelAdvanced, Weight: 0.8, Critical: true},
			{Skill: "Terraform", Level: skill.LevelIntermediate, Weight: 0.6},
			{Skill: "AWS", Level: skill.LevelIntermediate, Weight: 0.6},
			{Skill: "Go", Level: skill.LevelBeginner, Weight: 0.3},
		},
	},
	{
		Title: "Frontend Engineer (React)", Department: "Product", Location: "Bandung",
		Requirements: []requirementSeed{
			{Skill: "TypeScript", Level: skill.LevelAdvanced, Weight: 1, Critical: true},
			{Skill: "React", Level: skill.LevelAdvanced, Weight: 1, Critical: true},
			{Skill: "REST APIs", Level: skill.LevelIntermediate, Weight: 0.4},
			{Skill: "Communication", Level: skill.LevelIntermediate, Weight: 0.3},
		},
	},
	{
		Title: "Machine Learning Engineer", Department: "Data", Location: "Jakarta", MinExperience: years(3),
		Requirements: []requirementSeed{
			{Skill: "Python", Level: skill.LevelExpert, Weight: 1, Critical: true},
			{Skill: "Machine Learning", Level: skill.LevelAdvanced, Weight: 1, Critical: true},
			{Skill: "SQL", Level: skill.LevelIntermediate, Weight: 0.5},
			{Skill: "Docker", Level: skill.LevelBeginner, Weight: 0.3},
		},
	},
	{
		Title: "Engineering Manager", Department: "Platform", Location: "Jakarta", MinExperience: years(6),
		Requirements: []requirementSeed{
			{Skill: "Leadership", Level: skill.LevelAdvanced, Weight: 1, Critical: true},
			{Skill: "Mentoring", Level: skill.LevelAdvanced, Weight: 0.8},
			{Skill: "Agile", Level: skill.LevelIntermediate, Weight: 0.5},
			{Skill: "Go", Level: skill.LevelIntermediate, Weight: 0.5},
			{Skill: "Communication", Level: skill.LevelAdvanced, Weight: 0.8, Critical: true},
		},
	},
	{
		Title: "Java Backend Engineer", Department: "Payments", Location: "Remote", MinExperience: years(2),
		Requirements: []requirementSeed{
			{Skill: "Java", Level: skill.LevelAdvanced, Weight: 1, Critical: true},
			{Skill: "Spring Boot", Level: skill.LevelIntermediate, Weight: 0.8},
			{Skill: "PostgreSQL", Level: skill.LevelIntermediate, Weight: 0.6},
			{Skill: "Microservices", Level: skill.LevelIntermediate, Weight: 0.5},
		},
	},
}

// VacancySeeder upserts open sample vacancies whose requirements point at taxonomy skills.
type VacancySeeder struct {
	Skills    SkillLookup
	Vacancies repository.VacancyRepository
}

func (VacancySeeder) Name() string { return "vacancies" }

func (s VacancySeeder) Run(ctx context.Context) error {
	var names []string
	for _, v := range vacancySeeds {
		for _, r := range v.Requirements {
			names = append(names, r.Skill)
		}
	}
	skills, err := resolveSkills(ctx, s.Skills, names...)
	if err != nil {
		return err
	}

	for _, it := range vacancySeeds {
		v := vacancy.Vacancy{
			ID:                 seedID("vacancy", it.Title),
			Title:              it.Title,
			Department:         it.Department,
			Location:           it.Location,
			MinExperienceYears: it.MinExperience,
			Status:             vacancy.StatusOpen,
			IsActive:           true,
		}
		for _, r := range it.Requirements {
			sk, ok := skills[r.Skill]
			if !ok {
				continue
			}
			v.Requirements = append(v.Requirements, vacancy.Requirement{
				SkillID:    sk.ID,
				SkillName:  sk.Name,
				MinLevel:   r.Level,
				Weight:     r.Weight,
				IsCritical: r.Critical,
			})
		}
		if err := s.Vacancies.Upsert(ctx, v); err != nil {
			return fmt.Errorf("upsert vacancy %s: %w", it.Title, err)
		}
	}
	return nil
}
