package usecase

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type fakeSkillRepo struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]skill.Skill
	inserts  int
	trending []skill.Skill
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{byID: map[uuid.UUID]skill.Skill{}}
}

func (f *fakeSkillRepo) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return skill.Skill{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSkillRepo) GetByName(ctx context.Context, name string) (skill.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byID {
		if skill.NameKey(s.Name) == skill.NameKey(name) {
			return s, nil
		}
	}
	return skill.Skill{}, repository.ErrNotFound
}

func (f *fakeSkillRepo) Insert(ctx context.Context, s skill.Skill) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if skill.NameKey(existing.Name) == skill.NameKey(s.Name) {
			return false, nil
		}
	}
	f.inserts++
	f.byID[s.ID] = s
	return true, nil
}

func (f *fakeSkillRepo) SearchSimilar(ctx context.Context, p repository.SkillSearchParams) ([]skill.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	allowed := map[skill.Category]bool{}
	for _, c := range p.Categories {
		allowed[c] = true
	}
	out := make([]skill.SearchResult, 0)
	for _, s := range f.byID {
		if !s.IsActive || len(s.Embedding) == 0 {
			continue
		}
		if len(allowed) > 0 && !allowed[s.Category] {
			continue
		}
		sim := cosine(p.Embedding, s.Embedding)
		if sim >= p.Threshold {
			out = append(out, skill.SearchResult{Skill: s, Similarity: sim})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, nil
}

func (f *fakeSkillRepo) ListTrending(ctx context.Context, minDemand float64, limit int) ([]skill.Skill, error) {
	return f.trending, nil
}

func (f *fakeSkillRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

func (f *fakeSkillRepo) put(s skill.Skill) skill.Skill {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.mu.Lock()
	f.byID[s.ID] = s
	f.mu.Unlock()
	return s
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

type fakeRelRepo struct {
	mu    sync.Mutex
	rels  map[string]skill.Relationship
	names map[uuid.UUID]string
	err   error
}

func newFakeRelRepo() *fakeRelRepo {
	return &fakeRelRepo{rels: map[string]skill.Relationship{}, names: map[uuid.UUID]string{}}
}

func relKey(r skill.Relationship) string {
	return r.FromSkillID.String() + r.ToSkillID.String() + string(r.Type)
}

func (f *fakeRelRepo) Upsert(ctx context.Context, rel skill.Relationship) (skill.Relationship, error) {
	if f.err != nil {
		return skill.Relationship{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.rels[relKey(rel)]; ok {
		existing.Strength = rel.Strength
		f.rels[relKey(rel)] = existing
		return existing, nil
	}
	rel.ID = uuid.New()
	rel.CreatedAt = time.Now()
	f.rels[relKey(rel)] = rel
	return rel, nil
}

func (f *fakeRelRepo) ListOutgoing(ctx context.Context, id uuid.UUID, types []skill.RelationshipType) ([]skill.RelatedSkill, error) {
	return f.list(id, types, skill.DirectionOutgoing), nil
}

func (f *fakeRelRepo) ListIncoming(ctx context.Context, id uuid.UUID, types []skill.RelationshipType) ([]skill.RelatedSkill, error) {
	return f.list(id, types, skill.DirectionIncoming), nil
}

func (f *fakeRelRepo) list(id uuid.UUID, types []skill.RelationshipType, dir skill.Direction) []skill.RelatedSkill {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := map[skill.RelationshipType]bool{}
	for _, t := range types {
		want[t] = true
	}
	out := make([]skill.RelatedSkill, 0)
	for _, r := range f.rels {
		if len(want) > 0 && !want[r.Type] {
			continue
		}
		var other uuid.UUID
		switch {
		case dir == skill.DirectionOutgoing && r.FromSkillID == id:
			other = r.ToSkillID
		case dir == skill.DirectionIncoming && r.ToSkillID == id:
			other = r.FromSkillID
		default:
			continue
		}
		out = append(out, skill.RelatedSkill{
			RelationshipID: r.ID,
			SkillID:        other,
			SkillName:      f.names[other],
			Type:           r.Type,
			Strength:       r.Strength,
			Direction:      dir,
		})
	}
	return out
}

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubEmbedder) Model() string   { return "stub" }
func (s *stubEmbedder) Dimensions() int { return 3 }

type fakeSearchCache struct {
	mu      sync.Mutex
	values  map[string]any
	deleted []string
}

func newFakeSearchCache() *fakeSearchCache {
	return &fakeSearchCache{values: map[string]any{}}
}

func (c *fakeSearchCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	dst, ok := out.(*[]skill.SearchResult)
	if !ok {
		return false, errors.New("unexpected type")
	}
	*dst = v.([]skill.SearchResult)
	return true, nil
}

func (c *fakeSearchCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeSearchCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	c.values = map[string]any{}
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]talent.Profile
	eligible []uuid.UUID
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (talent.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return talent.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) ListEligibleIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f.eligible, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p talent.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = p
	return nil
}

type fakeVacancyRepo struct {
	vacancies map[uuid.UUID]vacancy.Vacancy
	open      []uuid.UUID
}

func (f *fakeVacancyRepo) GetByID(ctx context.Context, id uuid.UUID) (vacancy.Vacancy, error) {
	v, ok := f.vacancies[id]
	if !ok {
		return vacancy.Vacancy{}, repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeVacancyRepo) ListOpenIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f.open, nil
}

func (f *fakeVacancyRepo) Upsert(ctx context.Context, v vacancy.Vacancy) error {
	f.vacancies[v.ID] = v
	return nil
}

type fakeResultRepo struct {
	mu        sync.Mutex
	stored    map[[2]uuid.UUID]match.Result
	listErr   error
	upsertErr error
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{stored: map[[2]uuid.UUID]match.Result{}}
}

func (f *fakeResultRepo) Upsert(ctx context.Context, r match.Result) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[[2]uuid.UUID{r.ProfileID, r.VacancyID}] = r
	return nil
}

func (f *fakeResultRepo) List(ctx context.Context, filter repository.MatchResultFilter) ([]match.Result, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]match.Result, 0, len(f.stored))
	for _, r := range f.stored {
		if filter.VacancyID != nil && r.VacancyID != *filter.VacancyID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	matches  []match.Result
	rankings []string
}

func (n *fakeNotifier) MatchComputed(r match.Result) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.matches = append(n.matches, r)
}

func (n *fakeNotifier) RankingCompleted(kind string, subjectID uuid.UUID, results, skipped int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rankings = append(n.rankings, kind)
}

type fakeExplainer struct{ text string }

func (e fakeExplainer) Explain(ctx context.Context, p talent.Profile, v vacancy.Vacancy, r match.Result) string {
	return e.text
}

func ptrFloat(v float64) *float64 { return &v }
