package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/talent"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type roleTemplate struct {
	Title      string
	Department string
	Core       []string
	Optional   []string
}

var roleTemplates = []roleTemplate{
	{Title: "Backend Engineer", Department: "Platform", Core: []string{"Go", "PostgreSQL", "REST APIs"}, Optional: []string{"Docker", "Redis", "gRPC", "Kubernetes", "Microservices"}},
	{Title: "Data Engineer", Department: "Data", Core: []string{"Python", "SQL", "Data Engineering"}, Optional: []string{"AWS", "PostgreSQL", "Machine Learning", "Docker"}},
	{Title: "DevOps Engineer", Department: "Infrastructure", Core: []string{"Docker", "Kubernetes"}, Optional: []string{"Terraform", "AWS", "Go", "Certified Kubernetes Administrator"}},
	{Title: "Frontend Engineer", Department: "Product", Core: []string{"TypeScript", "React"}, Optional: []string{"REST APIs", "Communication", "Git"}},
	{Title: "Java Developer", Department: "Payments", Core: []string{"Java", "Spring Boot"}, Optional: []string{"PostgreSQL", "Microservices", "Docker"}},
	{Title: "Team Lead", Department: "Platform", Core: []string{"Leadership", "Communication", "Go"}, Optional: []string{"Mentoring", "Agile", "Scrum", "Code Review"}},
}

var (
	firstNames = []string{"Ayu", "Bima", "Citra", "Dewi", "Eko", "Fajar", "Gita", "Hadi", "Intan", "Joko", "Kartika", "Lukman"}
	lastNames  = []string{"Santoso", "Wijaya", "Pratama", "Lestari", "Nugroho", "Halim", "Saputra", "Kusuma"}
	locations  = []string{"Jakarta", "Bandung", "Surabaya", "Yogyakarta", "Remote"}
	levels     = skill.Levels()
)

// ProfileSeeder upserts a deterministic population of sample profiles built from role templates.
type ProfileSeeder struct {
	Skills   SkillLookup
	Profiles repository.ProfileRepository
	Count    int
	Seed     int64
}

func (ProfileSeeder) Name() string { return "profiles" }

func (s ProfileSeeder) Run(ctx context.Context) error {
	count := s.Count
	if count <= 0 {
		count = 24
	}
	seed := s.Seed
	if seed == 0 {
		seed = 42
	}
	rng := rand.New(rand.NewSource(seed))

	var names []string
	for _, t := range roleTemplates {
		names = append(names, t.Core...)
		names = append(names, t.Optional...)
	}
	skills, err := resolveSkills(ctx, s.Skills, names...)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		p := buildProfile(i, roleTemplates[i%len(roleTemplates)], skills, rng)
		if err := s.Profiles.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert profile %s: %w", p.Name, err)
		}
	}
	return nil
}

func buildProfile(i int, tpl roleTemplate, skills map[string]skill.Skill, rng *rand.Rand) talent.Profile {
	name := fmt.Sprintf("%s %s", firstNames[i%len(firstNames)], lastNames[(i/len(firstNames)+i)%len(lastNames)])
	exp := float64(rng.Intn(12)) + float64(rng.Intn(2))*0.5

	p := talent.Profile{
		ID:                seedID("profile", fmt.Sprintf("%03d", i)),
		Name:              name,
		RoleTitle:         tpl.Title,
		Department:        tpl.Department,
		Location:          locations[rng.Intn(len(locations))],
		ExperienceYears:   exp,
		DepartmentsWorked: []string{tpl.Department},
		IsActive:          true,
		MobilityReady:     rng.Intn(5) != 0,
		Skills:            map[uuid.UUID]talent.SkillLevel{},
	}
	if rng.Intn(3) == 0 {
		other := roleTemplates[rng.Intn(len(roleTemplates))].Department
		if other != tpl.Department {
			p.DepartmentsWorked = append(p.DepartmentsWorked, other)
		}
	}
	if p.MobilityReady && rng.Intn(4) == 0 {
		from := time.Now().UTC().AddDate(0, 1+rng.Intn(3), 0).Truncate(24 * time.Hour)
		p.AvailableFrom = &from
	}

	add := func(skillName string, minLevel, maxLevel int) {
		sk, ok := skills[skillName]
		if !ok {
			return
		}
		lvl := clamp(minLevel+rng.Intn(maxLevel-minLevel+1), 1, len(levels))
		p.Skills[sk.ID] = talent.SkillLevel{
			SkillID:         sk.ID,
			SkillName:       sk.Name,
			Level:           levels[lvl-1],
			ExperienceYears: float64(clamp(int(exp)-rng.Intn(3), 0, 20)),
		}
	}

	for _, c := range tpl.Core {
		add(c, 2, 5)
	}
	for _, o := range tpl.Optional {
		if rng.Intn(2) == 0 {
			add(o, 1, 4)
		}
	}
	return p
}
