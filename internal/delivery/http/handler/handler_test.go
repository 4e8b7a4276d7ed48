package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/vacancy"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	register(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, env
}

type fakeSkillGraph struct {
	created    bool
	err        error
	lastSearch usecase.SearchSkillsParams
	lastRel    usecase.AddRelationshipInput
	lastRev    bool
}

func (f *fakeSkillGraph) CreateSkill(_ context.Context, in usecase.CreateSkillInput) (skill.Skill, bool, error) {
	if f.err != nil {
		return skill.Skill{}, false, f.err
	}
	return skill.Skill{ID: uuid.New(), Name: in.Name, Category: in.Category, IsActive: true}, f.created, nil
}

func (f *fakeSkillGraph) AddRelationship(_ context.Context, in usecase.AddRelationshipInput) (skill.Relationship, error) {
	f.lastRel = in
	if f.err != nil {
		return skill.Relationship{}, f.err
	}
	return skill.Relationship{ID: uuid.New(), FromSkillID: in.FromSkillID, ToSkillID: in.ToSkillID, Type: in.Type, Strength: in.Strength}, nil
}

func (f *fakeSkillGraph) GetRelationships(_ context.Context, _ uuid.UUID, _ []skill.RelationshipType, includeReverse bool) (skill.RelationshipGroups, error) {
	f.lastRev = includeReverse
	return skill.RelationshipGroups{}, f.err
}

func (f *fakeSkillGraph) SearchSkills(_ context.Context, p usecase.SearchSkillsParams) ([]skill.SearchResult, error) {
	f.lastSearch = p
	return nil, f.err
}

type fakeMatching struct {
	err      error
	lastReqs vacancy.RequirementSet
}

func (f *fakeMatching) MatchPair(_ context.Context, profileID, vacancyID uuid.UUID) (match.Result, error) {
	if f.err != nil {
		return match.Result{}, f.err
	}
	return match.Result{ProfileID: profileID, VacancyID: vacancyID, Total: 0.8, Type: match.TypePartial}, nil
}

func (f *fakeMatching) AnalyzeGaps(_ context.Context, _ uuid.UUID, reqs vacancy.RequirementSet) ([]match.SkillGap, error) {
	f.lastReqs = reqs
	return nil, f.err
}

func (f *fakeMatching) Analytics(_ context.Context, _ *uuid.UUID) (matching.Analytics, error) {
	return matching.Analytics{}, f.err
}

func (f *fakeMatching) DevelopmentPlan(_ context.Context, _, _ uuid.UUID) ([]matching.DevelopmentRecommendation, error) {
	return nil, f.err
}

type fakeRanking struct {
	lastParams usecase.RankingParams
	res        usecase.RankingResult
	err        error
}

func (f *fakeRanking) FindCandidates(_ context.Context, _ uuid.UUID, p usecase.RankingParams) (usecase.RankingResult, error) {
	f.lastParams = p
	return f.res, f.err
}

func (f *fakeRanking) FindRoles(_ context.Context, _ uuid.UUID, p usecase.RankingParams) (usecase.RankingResult, error) {
	f.lastParams = p
	return f.res, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestSkillCreate_StatusReflectsCreation(t *testing.T) {
	uc := &fakeSkillGraph{created: true}
	app := newTestApp(NewSkillHandler(uc).RegisterRoutes)

	status, env := do(t, app, http.MethodPost, "/skills", `{"name":"Go","category":"Technical"}`)
	if status != fiber.StatusCreated || env.Status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%+v)", status, env)
	}

	uc.created = false
	status, env = do(t, app, http.MethodPost, "/skills", `{"name":"Go","category":"technical"}`)
	if status != fiber.StatusOK || env.Message != "Skill already exists" {
		t.Fatalf("expected 200 existing, got %d %q", status, env.Message)
	}
}

func TestSkillCreate_InvalidInputIs422(t *testing.T) {
	uc := &fakeSkillGraph{err: fmt.Errorf("%w: empty name", usecase.ErrInvalidInput)}
	app := newTestApp(NewSkillHandler(uc).RegisterRoutes)

	status, env := do(t, app, http.MethodPost, "/skills", `{"name":""}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	var data reasonData
	if err := json.Unmarshal(env.Data, &data); err != nil || !strings.Contains(data.Reason, "empty name") {
		t.Fatalf("expected reason in data, got %s (%v)", env.Data, err)
	}
}

func TestSkillCreate_MalformedBodyIs400(t *testing.T) {
	app := newTestApp(NewSkillHandler(&fakeSkillGraph{}).RegisterRoutes)

	status, _ := do(t, app, http.MethodPost, "/skills", `{"name":`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestSkillSearch_QueryParsing(t *testing.T) {
	uc := &fakeSkillGraph{}
	app := newTestApp(NewSkillHandler(uc).RegisterRoutes)

	status, _ := do(t, app, http.MethodGet, "/skills/search?q=golang&limit=5&threshold=0.5&category=Technical,%20tool", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	p := uc.lastSearch
	if p.Query != "golang" || p.Limit != 5 || p.Threshold == nil || *p.Threshold != 0.5 {
		t.Fatalf("unexpected params %+v", p)
	}
	if len(p.Categories) != 2 || p.Categories[0] != skill.CategoryTechnical || p.Categories[1] != skill.CategoryTool {
		t.Fatalf("unexpected categories %v", p.Categories)
	}

	if status, _ := do(t, app, http.MethodGet, "/skills/search?q=x", ""); status != fiber.StatusOK || uc.lastSearch.Threshold != nil {
		t.Fatalf("absent threshold must stay nil")
	}
	if status, _ := do(t, app, http.MethodGet, "/skills/search?q=x&limit=ten", ""); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", status)
	}
}

func TestAddRelationship_DefaultStrength(t *testing.T) {
	uc := &fakeSkillGraph{}
	app := newTestApp(NewSkillHandler(uc).RegisterRoutes)

	body := fmt.Sprintf(`{"from_skill_id":%q,"to_skill_id":%q,"relationship_type":"Complement"}`, uuid.NewString(), uuid.NewString())
	status, _ := do(t, app, http.MethodPost, "/skills/relationships", body)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if uc.lastRel.Strength != 1 || uc.lastRel.Type != skill.RelationshipComplement {
		t.Fatalf("unexpected input %+v", uc.lastRel)
	}
}

func TestRelationships_ReverseDefaultsOnAndBadID(t *testing.T) {
	uc := &fakeSkillGraph{}
	app := newTestApp(NewSkillHandler(uc).RegisterRoutes)

	if status, _ := do(t, app, http.MethodGet, "/skills/"+uuid.NewString()+"/relationships", ""); status != fiber.StatusOK || !uc.lastRev {
		t.Fatalf("expected reverse edges by default (status %d)", status)
	}
	if status, _ := do(t, app, http.MethodGet, "/skills/"+uuid.NewString()+"/relationships?include_reverse=false", ""); status != fiber.StatusOK || uc.lastRev {
		t.Fatalf("expected include_reverse=false to be honored (status %d)", status)
	}
	if status, _ := do(t, app, http.MethodGet, "/skills/not-a-uuid/relationships", ""); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestGetMatch_NotFoundMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("load: %w", usecase.ErrProfileNotFound), fiber.StatusNotFound},
		{usecase.ErrVacancyNotFound, fiber.StatusNotFound},
		{&matching.ValidationError{Reason: "weight out of range"}, fiber.StatusUnprocessableEntity},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := newTestApp(NewMatchHandler(&fakeMatching{err: tc.err}).RegisterRoutes)
		status, _ := do(t, app, http.MethodGet, "/matches/"+uuid.NewString()+"/"+uuid.NewString(), "")
		if status != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, status)
		}
	}
}

func TestGetMatch_OK(t *testing.T) {
	app := newTestApp(NewMatchHandler(&fakeMatching{}).RegisterRoutes)

	status, env := do(t, app, http.MethodGet, "/matches/"+uuid.NewString()+"/"+uuid.NewString(), "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var body map[string]any
	if err := json.Unmarshal(env.Data, &body); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if body["match_type"] != string(match.TypePartial) {
		t.Fatalf("unexpected match_type %v", body["match_type"])
	}
	if gaps, ok := body["gaps"].([]any); !ok || len(gaps) != 0 {
		t.Fatalf("gaps must serialize as an empty list, got %v", body["gaps"])
	}
}

func TestAnalyzeGaps_DefaultsWeight(t *testing.T) {
	uc := &fakeMatching{}
	app := newTestApp(NewMatchHandler(uc).RegisterRoutes)

	body := fmt.Sprintf(`{"requirements":[{"skill_id":%q,"min_level":"Advanced","is_critical":true}]}`, uuid.NewString())
	status, _ := do(t, app, http.MethodPost, "/profiles/"+uuid.NewString()+"/gaps", body)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(uc.lastReqs) != 1 || uc.lastReqs[0].Weight != 1 || uc.lastReqs[0].MinLevel != skill.LevelAdvanced {
		t.Fatalf("unexpected requirements %+v", uc.lastReqs)
	}
}

func TestAnalytics_BadVacancyID(t *testing.T) {
	app := newTestApp(NewMatchHandler(&fakeMatching{}).RegisterRoutes)

	if status, _ := do(t, app, http.MethodGet, "/matches/analytics?vacancy_id=nope", ""); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if status, _ := do(t, app, http.MethodGet, "/matches/analytics", ""); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}

func TestCandidates_ResponseShape(t *testing.T) {
	sid := uuid.New()
	uc := &fakeRanking{res: usecase.RankingResult{
		Items:     []match.Ranked{{Rank: 1, SubjectID: sid, Result: match.Result{ProfileID: sid, Total: 0.91, Type: match.TypeExact}}},
		Evaluated: 3,
		Skipped:   1,
	}}
	app := newTestApp(NewRankingHandler(uc).RegisterRoutes)

	status, env := do(t, app, http.MethodGet, "/vacancies/"+uuid.NewString()+"/candidates?limit=5&min_score=0.4&include_stretch=true", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if p := uc.lastParams; p.Limit != 5 || p.MinScore != 0.4 || !p.IncludeStretch {
		t.Fatalf("unexpected params %+v", p)
	}

	var data struct {
		Items []struct {
			Rank      int       `json:"rank"`
			SubjectID uuid.UUID `json:"subject_id"`
		} `json:"items"`
		Evaluated int `json:"evaluated"`
		Skipped   int `json:"skipped"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Items) != 1 || data.Items[0].SubjectID != sid || data.Items[0].Rank != 1 || data.Evaluated != 3 || data.Skipped != 1 {
		t.Fatalf("unexpected ranking payload %+v", data)
	}

	if status, _ := do(t, app, http.MethodGet, "/vacancies/"+uuid.NewString()+"/candidates?include_stretch=maybe", ""); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestRoles_InvalidInputIs422(t *testing.T) {
	uc := &fakeRanking{err: fmt.Errorf("%w: min_score must be within [0,1]", usecase.ErrInvalidInput)}
	app := newTestApp(NewRankingHandler(uc).RegisterRoutes)

	if status, _ := do(t, app, http.MethodGet, "/profiles/"+uuid.NewString()+"/roles?min_score=2", ""); status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
}

func TestHealth(t *testing.T) {
	up := newTestApp(NewHealthHandler(fakePinger{}).RegisterRoutes)
	status, env := do(t, up, http.MethodGet, "/health", "")
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"up"`) {
		t.Fatalf("expected up, got %d %s", status, env.Data)
	}

	down := newTestApp(NewHealthHandler(fakePinger{err: errors.New("refused")}).RegisterRoutes)
	status, env = do(t, down, http.MethodGet, "/health", "")
	if status != fiber.StatusServiceUnavailable || !strings.Contains(string(env.Data), `"down"`) {
		t.Fatalf("expected 503 down, got %d %s", status, env.Data)
	}
}

type statsPinger struct{ fakePinger }

func (statsPinger) Stats() dbpostgres.PoolStats { return dbpostgres.PoolStats{Total: 4, Idle: 3, Max: 10} }

func TestHealth_ReportsPoolStats(t *testing.T) {
	app := newTestApp(NewHealthHandler(statsPinger{}).RegisterRoutes)
	status, env := do(t, app, http.MethodGet, "/health", "")
	if status != fiber.StatusOK || !strings.Contains(string(env.Data), `"total_conns":4`) {
		t.Fatalf("expected pool stats, got %d %s", status, env.Data)
	}
}
