package integration

import (
	"context"
	"hash/fnv"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"
	"talent-match/internal/explain"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"

	"github.com/google/uuid"
)

const testDimensions = 768

// hashEmbedder maps each lowercase word to a fixed axis so texts sharing words are similar.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, testDimensions)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.Trim(w, ".,:;")))
		v[h.Sum32()%testDimensions] += 1
	}
	var norm float64
	for _, x := range v {
		norm += float64(x * x)
	}
	if norm == 0 {
		v[0] = 1
		return v, nil
	}
	n := float32(math.Sqrt(norm))
	for i := range v {
		v[i] /= n
	}
	return v, nil
}

func (hashEmbedder) Model() string   { return "hash" }
func (hashEmbedder) Dimensions() int { return testDimensions }

func TestIntegration_SkillGraph_Match_Rank(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	if err := migration.Embedded(nil).Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	suffix := uuid.NewString()[:8]
	skills := repository.NewPostgresSkillRepository(db)
	graph := usecase.NewSkillGraph(skills, repository.NewPostgresSkillRelationshipRepository(db), hashEmbedder{}, nil, nil)
	defer cleanup(t, db, suffix)

	goSkill, created, err := graph.CreateSkill(ctx, usecase.CreateSkillInput{Name: "Golang " + suffix, Category: skill.CategoryTechnical, Description: "golang services"})
	if err != nil || !created {
		t.Fatalf("create skill: created=%v err=%v", created, err)
	}
	sqlSkill, _, err := graph.CreateSkill(ctx, usecase.CreateSkillInput{Name: "Postgres " + suffix, Category: skill.CategoryTechnical})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}

	again, created, err := graph.CreateSkill(ctx, usecase.CreateSkillInput{Name: strings.ToUpper("golang " + suffix), Category: skill.CategoryTechnical})
	if err != nil || created || again.ID != goSkill.ID {
		t.Fatalf("expected existing skill on duplicate name, got created=%v id=%s err=%v", created, again.ID, err)
	}

	if _, err := graph.AddRelationship(ctx, usecase.AddRelationshipInput{FromSkillID: sqlSkill.ID, ToSkillID: goSkill.ID, Type: skill.RelationshipComplement, Strength: 0.6}); err != nil {
		t.Fatalf("add relationship: %v", err)
	}
	groups, err := graph.GetRelationships(ctx, goSkill.ID, nil, true)
	if err != nil {
		t.Fatalf("get relationships: %v", err)
	}
	if rev := groups[skill.ReverseKey(skill.RelationshipComplement)]; len(rev) != 1 || rev[0].SkillID != sqlSkill.ID {
		t.Fatalf("expected one incoming complement edge, got %+v", groups)
	}

	threshold := 0.5
	found, err := graph.SearchSkills(ctx, usecase.SearchSkillsParams{Query: "Golang " + suffix, Threshold: &threshold})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) == 0 || found[0].Skill.ID != goSkill.ID {
		t.Fatalf("expected %s as best hit, got %+v", goSkill.Name, found)
	}

	profiles := repository.NewPostgresProfileRepository(db)
	vacancies := repository.NewPostgresVacancyRepository(db)
	results := repository.NewPostgresMatchResultRepository(db)

	vid := uuid.New()
	v := vacancy.Vacancy{
		ID: vid, Title: "Backend " + suffix, Department: "Platform", Status: vacancy.StatusOpen, IsActive: true,
		Requirements: vacancy.RequirementSet{
			{SkillID: goSkill.ID, SkillName: goSkill.Name, MinLevel: skill.LevelAdvanced, Weight: 1, IsCritical: true},
			{SkillID: sqlSkill.ID, SkillName: sqlSkill.Name, MinLevel: skill.LevelIntermediate, Weight: 0.5},
		},
	}
	if err := vacancies.Upsert(ctx, v); err != nil {
		t.Fatalf("upsert vacancy: %v", err)
	}

	strong, weak := uuid.New(), uuid.New()
	for _, p := range []talent.Profile{
		{ID: strong, Name: "Strong " + suffix, Department: "Platform", ExperienceYears: 6, IsActive: true, MobilityReady: true,
			Skills: map[uuid.UUID]talent.SkillLevel{
				goSkill.ID:  {SkillID: goSkill.ID, Level: skill.LevelExpert},
				sqlSkill.ID: {SkillID: sqlSkill.ID, Level: skill.LevelAdvanced},
			}},
		{ID: weak, Name: "Weak " + suffix, Department: "Sales", ExperienceYears: 1, IsActive: true, MobilityReady: true,
			Skills: map[uuid.UUID]talent.SkillLevel{
				sqlSkill.ID: {SkillID: sqlSkill.ID, Level: skill.LevelBeginner},
			}},
	} {
		if err := profiles.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert profile: %v", err)
		}
	}

	engine := matching.NewEngine()
	uc := usecase.NewMatchingUsecase(usecase.MatchingDeps{
		Profiles: profiles, Vacancies: vacancies, Results: results, Skills: skills,
		Engine: engine, Explainer: explain.New(nil, explain.Options{}, nil),
	})

	res, err := uc.MatchPair(ctx, strong, vid)
	if err != nil {
		t.Fatalf("match pair: %v", err)
	}
	if res.Type != match.TypeExact || res.Explanation == "" {
		t.Fatalf("expected explained exact match, got %s %q", res.Type, res.Explanation)
	}
	a, err := uc.Analytics(ctx, &vid)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if a.TotalMatches != 1 {
		t.Fatalf("expected one stored result, got %d", a.TotalMatches)
	}

	ranking := usecase.NewRankingUsecase(profiles, vacancies, results, engine, nil, usecase.RankingOptions{Workers: 4}, nil)
	ranked, err := ranking.FindCandidates(ctx, vid, usecase.RankingParams{IncludeStretch: true, Limit: 200})
	if err != nil {
		t.Fatalf("find candidates: %v", err)
	}
	posStrong, posWeak := -1, -1
	for i, it := range ranked.Items {
		switch it.SubjectID {
		case strong:
			posStrong = i
		case weak:
			posWeak = i
		}
		if it.Rank != i+1 {
			t.Fatalf("rank %d at position %d", it.Rank, i)
		}
	}
	if posStrong < 0 || posWeak < 0 || posStrong > posWeak {
		t.Fatalf("expected strong before weak, got %d and %d", posStrong, posWeak)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) *dbpostgres.Pool {
	t.Helper()

	cfg := config.DatabaseConfig{
		DBHost:     os.Getenv("TALENT_TEST_DB_HOST"),
		DBPort:     os.Getenv("TALENT_TEST_DB_PORT"),
		DBName:     os.Getenv("TALENT_TEST_DB_NAME"),
		DBUser:     os.Getenv("TALENT_TEST_DB_USER"),
		DBPassword: os.Getenv("TALENT_TEST_DB_PASSWORD"),
		DBSSLMode:  os.Getenv("TALENT_TEST_DB_SSL_MODE"),
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" || cfg.DBUser == "" {
		t.Skip("missing test DB env vars: set TALENT_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}

	db, err := dbpostgres.Connect(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func cleanup(t *testing.T, db database.DB, suffix string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	like := "%" + suffix
	stmts := []string{
		`DELETE FROM match_results WHERE vacancy_id IN (SELECT id FROM vacancies WHERE title LIKE $1)`,
		`DELETE FROM vacancies WHERE title LIKE $1`,
		`DELETE FROM profiles WHERE name LIKE $1`,
		`DELETE FROM skill_relationships WHERE from_skill_id IN (SELECT id FROM skills WHERE name LIKE $1)
			OR to_skill_id IN (SELECT id FROM skills WHERE name LIKE $1)`,
		`DELETE FROM skills WHERE name LIKE $1`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(ctx, q, like); err != nil {
			t.Logf("cleanup %q: %v", q, err)
		}
	}
}
