package usecase

import (
	"context"
	"errors"
	"testing"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"

	"github.com/google/uuid"
)

var (
	profileA = uuid.MustParse("20000000-0000-0000-0000-00000000000a")
	profileB = uuid.MustParse("20000000-0000-0000-0000-00000000000b")
	profileC = uuid.MustParse("20000000-0000-0000-0000-00000000000c")
	profileW = uuid.MustParse("20000000-0000-0000-0000-0000000000ff")
	ghostID  = uuid.MustParse("20000000-0000-0000-0000-000000000001")
)

func rankingFixture() (*fakeProfileRepo, *fakeVacancyRepo, uuid.UUID) {
	vid := uuid.New()
	profiles := &fakeProfileRepo{
		profiles: map[uuid.UUID]talent.Profile{
			profileB: strongProfile(profileB),
			profileA: strongProfile(profileA),
			profileC: strongProfile(profileC),
			profileW: weakProfile(profileW),
		},
		eligible: []uuid.UUID{profileW, profileC, ghostID, profileB, profileA},
	}
	vacancies := &fakeVacancyRepo{
		vacancies: map[uuid.UUID]vacancy.Vacancy{vid: backendVacancy(vid)},
		open:      []uuid.UUID{vid},
	}
	return profiles, vacancies, vid
}

func TestFindCandidates_DeterministicOrderAndSkips(t *testing.T) {
	profiles, vacancies, vid := rankingFixture()
	n := &fakeNotifier{}
	uc := NewRankingUsecase(profiles, vacancies, nil, fixedEngine(), n, RankingOptions{Workers: 3}, nil)

	res, err := uc.FindCandidates(context.Background(), vid, RankingParams{IncludeStretch: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Skipped != 1 || res.Evaluated != 4 {
		t.Fatalf("expected 4 evaluated and 1 skipped, got %d/%d", res.Evaluated, res.Skipped)
	}

	want := []uuid.UUID{profileA, profileB, profileC, profileW}
	if len(res.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(res.Items))
	}
	for i, it := range res.Items {
		if it.SubjectID != want[i] || it.Rank != i+1 {
			t.Fatalf("position %d: want %s rank %d, got %s rank %d", i, want[i], i+1, it.SubjectID, it.Rank)
		}
	}
	if len(n.rankings) != 1 || n.rankings[0] != RankingCandidates {
		t.Fatalf("expected a candidates notification, got %v", n.rankings)
	}

	again, err := uc.FindCandidates(context.Background(), vid, RankingParams{IncludeStretch: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for i := range again.Items {
		if again.Items[i].SubjectID != res.Items[i].SubjectID {
			t.Fatalf("ranking is not stable across runs")
		}
	}
}

func TestFindCandidates_FiltersAndLimits(t *testing.T) {
	profiles, vacancies, vid := rankingFixture()
	uc := NewRankingUsecase(profiles, vacancies, nil, fixedEngine(), nil, RankingOptions{}, nil)

	res, err := uc.FindCandidates(context.Background(), vid, RankingParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, it := range res.Items {
		if it.Result.Type == match.TypeStretch {
			t.Fatalf("stretch results must be excluded by default")
		}
	}
	if len(res.Items) != 3 {
		t.Fatalf("expected 3 non-stretch results, got %d", len(res.Items))
	}

	limited, err := uc.FindCandidates(context.Background(), vid, RankingParams{Limit: 2, MinScore: 0.5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(limited.Items) != 2 || limited.Items[1].Rank != 2 {
		t.Fatalf("expected two ranked rows, got %+v", limited.Items)
	}

	if _, err := uc.FindCandidates(context.Background(), vid, RankingParams{MinScore: 1.5}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.FindCandidates(context.Background(), uuid.New(), RankingParams{}); !errors.Is(err, ErrVacancyNotFound) {
		t.Fatalf("expected ErrVacancyNotFound, got %v", err)
	}
}

func TestFindRoles_SkipsVanishedVacancy(t *testing.T) {
	profiles, vacancies, vid := rankingFixture()
	vacancies.open = append(vacancies.open, uuid.New())
	uc := NewRankingUsecase(profiles, vacancies, nil, fixedEngine(), nil, RankingOptions{Workers: 2, RateLimit: 100}, nil)

	res, err := uc.FindRoles(context.Background(), profileA, RankingParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Skipped != 1 || len(res.Items) != 1 || res.Items[0].SubjectID != vid {
		t.Fatalf("unexpected roles result %+v", res)
	}
	if _, err := uc.FindRoles(context.Background(), ghostID, RankingParams{}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestFindCandidates_StoresEvaluatedPairs(t *testing.T) {
	profiles, vacancies, vid := rankingFixture()
	results := newFakeResultRepo()
	uc := NewRankingUsecase(profiles, vacancies, results, fixedEngine(), nil, RankingOptions{Workers: 2}, nil)

	res, err := uc.FindCandidates(context.Background(), vid, RankingParams{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("expected one ranked row, got %d", len(res.Items))
	}
	if len(results.stored) != 4 {
		t.Fatalf("expected every evaluated pair stored, got %d", len(results.stored))
	}
	for _, id := range []uuid.UUID{profileA, profileB, profileC, profileW} {
		if _, ok := results.stored[[2]uuid.UUID{id, vid}]; !ok {
			t.Fatalf("missing stored result for %s", id)
		}
	}
}

func TestFindCandidates_WriteFailureSkipsPair(t *testing.T) {
	profiles, vacancies, vid := rankingFixture()
	results := newFakeResultRepo()
	results.upsertErr = errors.New("connection reset")
	uc := NewRankingUsecase(profiles, vacancies, results, fixedEngine(), nil, RankingOptions{}, nil)

	res, err := uc.FindCandidates(context.Background(), vid, RankingParams{IncludeStretch: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Evaluated != 0 || res.Skipped != 5 || len(res.Items) != 0 {
		t.Fatalf("expected all pairs skipped, got %+v", res)
	}
}

func TestFindRoles_DoesNotStoreResults(t *testing.T) {
	profiles, vacancies, _ := rankingFixture()
	results := newFakeResultRepo()
	uc := NewRankingUsecase(profiles, vacancies, results, fixedEngine(), nil, RankingOptions{}, nil)

	if _, err := uc.FindRoles(context.Background(), profileA, RankingParams{IncludeStretch: true}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results.stored) != 0 {
		t.Fatalf("expected no stored results, got %d", len(results.stored))
	}
}
