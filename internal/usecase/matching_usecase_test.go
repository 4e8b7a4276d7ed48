package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"

	"github.com/google/uuid"
)

var (
	goSkillID     = uuid.MustParse("10000000-0000-0000-0000-000000000001")
	sqlSkillID    = uuid.MustParse("10000000-0000-0000-0000-000000000002")
	dockerSkillID = uuid.MustParse("10000000-0000-0000-0000-000000000003")
)

func fixedEngine() *matching.Engine {
	return matching.NewEngine().WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) })
}

func backendVacancy(id uuid.UUID) vacancy.Vacancy {
	return vacancy.Vacancy{
		ID:         id,
		Title:      "Backend Engineer",
		Department: "Platform",
		Status:     vacancy.StatusOpen,
		IsActive:   true,
		Requirements: vacancy.RequirementSet{
			{SkillID: goSkillID, SkillName: "Go", MinLevel: skill.LevelAdvanced, Weight: 1, IsCritical: true},
			{SkillID: sqlSkillID, SkillName: "SQL", MinLevel: skill.LevelIntermediate, Weight: 0.5},
		},
	}
}

func strongProfile(id uuid.UUID) talent.Profile {
	return talent.Profile{
		ID:              id,
		Name:            "Ari",
		RoleTitle:       "Software Engineer",
		Department:      "Platform",
		ExperienceYears: 5,
		IsActive:        true,
		MobilityReady:   true,
		Skills: map[uuid.UUID]talent.SkillLevel{
			goSkillID:  {SkillID: goSkillID, SkillName: "Go", Level: skill.LevelExpert},
			sqlSkillID: {SkillID: sqlSkillID, SkillName: "SQL", Level: skill.LevelAdvanced},
		},
	}
}

func weakProfile(id uuid.UUID) talent.Profile {
	return talent.Profile{ID: id, Name: "Kim", IsActive: true, MobilityReady: true}
}

func newMatching(profiles *fakeProfileRepo, vacancies *fakeVacancyRepo, results *fakeResultRepo, skills *fakeSkillRepo, n *fakeNotifier) *Matching {
	deps := MatchingDeps{
		Profiles:  profiles,
		Vacancies: vacancies,
		Results:   results,
		Skills:    skills,
		Engine:    fixedEngine(),
		Explainer: fakeExplainer{text: "solid fit"},
	}
	if n != nil {
		deps.Notifier = n
	}
	return NewMatchingUsecase(deps)
}

func TestMatchPair_PersistsExplainsAndNotifies(t *testing.T) {
	pid, vid := uuid.New(), uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]talent.Profile{pid: strongProfile(pid)}}
	vacancies := &fakeVacancyRepo{vacancies: map[uuid.UUID]vacancy.Vacancy{vid: backendVacancy(vid)}}
	results := newFakeResultRepo()
	n := &fakeNotifier{}

	res, err := newMatching(profiles, vacancies, results, newFakeSkillRepo(), n).MatchPair(context.Background(), pid, vid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Type != match.TypeExact {
		t.Fatalf("expected exact match, got %s (total %.4f)", res.Type, res.Total)
	}
	if res.Explanation != "solid fit" {
		t.Fatalf("unexpected explanation %q", res.Explanation)
	}
	if _, ok := results.stored[[2]uuid.UUID{pid, vid}]; !ok {
		t.Fatalf("expected result to be stored")
	}
	if len(n.matches) != 1 {
		t.Fatalf("expected one notification, got %d", len(n.matches))
	}
	if res.Availability != "available now" {
		t.Fatalf("unexpected availability %q", res.Availability)
	}
}

func TestMatchPair_NotFound(t *testing.T) {
	pid, vid := uuid.New(), uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]talent.Profile{pid: strongProfile(pid)}}
	vacancies := &fakeVacancyRepo{vacancies: map[uuid.UUID]vacancy.Vacancy{vid: backendVacancy(vid)}}
	uc := newMatching(profiles, vacancies, newFakeResultRepo(), newFakeSkillRepo(), nil)

	if _, err := uc.MatchPair(context.Background(), uuid.New(), vid); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := uc.MatchPair(context.Background(), pid, uuid.New()); !errors.Is(err, ErrVacancyNotFound) {
		t.Fatalf("expected ErrVacancyNotFound, got %v", err)
	}
}

func TestMatchPair_LastWriteWins(t *testing.T) {
	pid, vid := uuid.New(), uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]talent.Profile{pid: weakProfile(pid)}}
	vacancies := &fakeVacancyRepo{vacancies: map[uuid.UUID]vacancy.Vacancy{vid: backendVacancy(vid)}}
	results := newFakeResultRepo()
	uc := newMatching(profiles, vacancies, results, newFakeSkillRepo(), nil)

	if _, err := uc.MatchPair(context.Background(), pid, vid); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	profiles.profiles[pid] = strongProfile(pid)
	second, err := uc.MatchPair(context.Background(), pid, vid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results.stored) != 1 || results.stored[[2]uuid.UUID{pid, vid}].Total != second.Total {
		t.Fatalf("expected a single overwritten record")
	}
}

func TestAnalyzeGaps_ResolvesNamesAndValidates(t *testing.T) {
	pid := uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]talent.Profile{pid: weakProfile(pid)}}
	skills := newFakeSkillRepo()
	skills.put(skill.Skill{ID: dockerSkillID, Name: "Docker", Category: skill.CategoryTool, IsActive: true})
	uc := newMatching(profiles, &fakeVacancyRepo{}, newFakeResultRepo(), skills, nil)

	gaps, err := uc.AnalyzeGaps(context.Background(), pid, vacancy.RequirementSet{
		{SkillID: dockerSkillID, MinLevel: skill.LevelExpert, Weight: 1, IsCritical: true},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(gaps) != 1 || gaps[0].SkillName != "Docker" || gaps[0].Severity != match.SeverityCritical {
		t.Fatalf("unexpected gaps %+v", gaps)
	}

	_, err = uc.AnalyzeGaps(context.Background(), pid, vacancy.RequirementSet{
		{SkillID: dockerSkillID, MinLevel: skill.LevelExpert, Weight: 2},
	})
	if !errors.Is(err, matching.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAnalyzeGaps_SkipsUnknownSkills(t *testing.T) {
	pid := uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]talent.Profile{pid: weakProfile(pid)}}
	skills := newFakeSkillRepo()
	skills.put(skill.Skill{ID: dockerSkillID, Name: "Docker", Category: skill.CategoryTool, IsActive: true})
	uc := newMatching(profiles, &fakeVacancyRepo{}, newFakeResultRepo(), skills, nil)

	unknown := uuid.New()
	gaps, err := uc.AnalyzeGaps(context.Background(), pid, vacancy.RequirementSet{
		{SkillID: dockerSkillID, MinLevel: skill.LevelExpert, Weight: 1, IsCritical: true},
		{SkillID: unknown, MinLevel: skill.LevelNovice, Weight: 1},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(gaps) != 1 || gaps[0].SkillID != dockerSkillID {
		t.Fatalf("expected only the Docker gap, got %+v", gaps)
	}

	gaps, err = uc.AnalyzeGaps(context.Background(), pid, vacancy.RequirementSet{
		{SkillID: unknown, MinLevel: skill.LevelNovice, Weight: 1},
	})
	if err != nil || len(gaps) != 0 {
		t.Fatalf("expected no gaps and no error, got %+v, %v", gaps, err)
	}
}

func TestDevelopmentPlan_SkipsRequiredTrendingSkills(t *testing.T) {
	pid, vid := uuid.New(), uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]talent.Profile{pid: weakProfile(pid)}}
	vacancies := &fakeVacancyRepo{vacancies: map[uuid.UUID]vacancy.Vacancy{vid: backendVacancy(vid)}}
	skills := newFakeSkillRepo()
	skills.trending = []skill.Skill{
		{ID: goSkillID, Name: "Go", IsActive: true, MarketDemand: 9},
		{ID: dockerSkillID, Name: "Docker", IsActive: true, MarketDemand: 8},
	}
	uc := newMatching(profiles, vacancies, newFakeResultRepo(), skills, nil)

	plan, err := uc.DevelopmentPlan(context.Background(), pid, vid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(plan) != 3 {
		t.Fatalf("expected 2 gap items and 1 trending item, got %d: %+v", len(plan), plan)
	}
	if plan[0].SkillID != goSkillID || plan[0].Priority != 1 {
		t.Fatalf("expected critical Go gap first, got %+v", plan[0])
	}
	trending := 0
	for _, r := range plan {
		if r.Trending {
			trending++
			if r.SkillID != dockerSkillID {
				t.Fatalf("unexpected trending skill %s", r.SkillName)
			}
		}
	}
	if trending != 1 {
		t.Fatalf("expected one trending item, got %d", trending)
	}
}

func TestAnalytics_FiltersByVacancy(t *testing.T) {
	results := newFakeResultRepo()
	vid := uuid.New()
	_ = results.Upsert(context.Background(), match.Result{ProfileID: uuid.New(), VacancyID: vid, Total: 0.95, Type: match.TypeExact})
	_ = results.Upsert(context.Background(), match.Result{ProfileID: uuid.New(), VacancyID: vid, Total: 0.55, Type: match.TypePotential})
	_ = results.Upsert(context.Background(), match.Result{ProfileID: uuid.New(), VacancyID: uuid.New(), Total: 0.2, Type: match.TypeStretch})

	uc := newMatching(&fakeProfileRepo{}, &fakeVacancyRepo{}, results, newFakeSkillRepo(), nil)
	a, err := uc.Analytics(context.Background(), &vid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.TotalMatches != 2 || a.AverageScore != 0.75 {
		t.Fatalf("unexpected analytics %+v", a)
	}

	all, err := uc.Analytics(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if all.TotalMatches != 3 {
		t.Fatalf("expected 3 matches, got %d", all.TotalMatches)
	}
}
