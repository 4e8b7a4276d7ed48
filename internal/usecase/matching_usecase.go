package usecase

import (
	"context"
	"errors"
	"fmt"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const trendingLookup = 5

type MatchNotifier interface {
	MatchComputed(r match.Result)
	RankingCompleted(kind string, subjectID uuid.UUID, results, skipped int)
}

type Explainer interface {
	Explain(ctx context.Context, p talent.Profile, v vacancy.Vacancy, r match.Result) string
}

type MatchingUsecase interface {
	MatchPair(ctx context.Context, profileID, vacancyID uuid.UUID) (match.Result, error)
	AnalyzeGaps(ctx context.Context, profileID uuid.UUID, reqs vacancy.RequirementSet) ([]match.SkillGap, error)
	Analytics(ctx context.Context, vacancyID *uuid.UUID) (matching.Analytics, error)
	DevelopmentPlan(ctx context.Context, profileID, vacancyID uuid.UUID) ([]matching.DevelopmentRecommendation, error)
}

type Matching struct {
	profiles  repository.ProfileRepository
	vacancies repository.VacancyRepository
	results   repository.MatchResultRepository
	skills    repository.SkillRepository
	engine    *matching.Engine
	explainer Explainer
	notifier  MatchNotifier
	logger    *zap.Logger
}

type MatchingDeps struct {
	Profiles  repository.ProfileRepository
	Vacancies repository.VacancyRepository
	Results   repository.MatchResultRepository
	Skills    repository.SkillRepository
	Engine    *matching.Engine
	Explainer Explainer
	Notifier  MatchNotifier
	Logger    *zap.Logger
}

func NewMatchingUsecase(d MatchingDeps) *Matching {
	if d.Engine == nil {
		d.Engine = matching.NewEngine()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Matching{
		profiles:  d.Profiles,
		vacancies: d.Vacancies,
		results:   d.Results,
		skills:    d.Skills,
		engine:    d.Engine,
		explainer: d.Explainer,
		notifier:  d.Notifier,
		logger:    d.Logger.Named("matching"),
	}
}

// MatchPair evaluates one profile against one vacancy, explains and persists the result.
func (u *Matching) MatchPair(ctx context.Context, profileID, vacancyID uuid.UUID) (match.Result, error) {
	p, err := loadProfile(ctx, u.profiles, profileID)
	if err != nil {
		return match.Result{}, err
	}
	v, err := loadVacancy(ctx, u.vacancies, vacancyID)
	if err != nil {
		return match.Result{}, err
	}

	res, err := u.engine.Evaluate(p, v)
	if err != nil {
		return match.Result{}, err
	}
	if u.explainer != nil {
		res.Explanation = u.explainer.Explain(ctx, p, v, res)
	}

	if u.results != nil {
		if err := u.results.Upsert(ctx, res); err != nil {
			return match.Result{}, fmt.Errorf("store match result: %w", err)
		}
	}
	if u.notifier != nil {
		u.notifier.MatchComputed(res)
	}

	u.logger.Info("match computed",
		zap.String("profile_id", profileID.String()),
		zap.String("vacancy_id", vacancyID.String()),
		zap.Float64("total", res.Total),
		zap.String("match_type", string(res.Type)),
		zap.Int("gaps", len(res.Gaps)),
	)
	return res, nil
}

// AnalyzeGaps compares a stored profile with an ad-hoc requirement set.
// Requirements naming a skill that is not in the store are logged and left out.
func (u *Matching) AnalyzeGaps(ctx context.Context, profileID uuid.UUID, reqs vacancy.RequirementSet) ([]match.SkillGap, error) {
	if err := matching.ValidateRequirements(reqs); err != nil {
		return nil, err
	}
	p, err := loadProfile(ctx, u.profiles, profileID)
	if err != nil {
		return nil, err
	}

	named := make(vacancy.RequirementSet, 0, len(reqs))
	for _, r := range reqs {
		if r.SkillName != "" || u.skills == nil {
			named = append(named, r)
			continue
		}
		s, err := u.skills.GetByID(ctx, r.SkillID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				u.logger.Warn("requirement skipped, unknown skill",
					zap.String("profile_id", profileID.String()),
					zap.String("skill_id", r.SkillID.String()),
				)
				continue
			}
			return nil, fmt.Errorf("lookup skill: %w", err)
		}
		r.SkillName = s.Name
		named = append(named, r)
	}
	if len(named) == 0 {
		return []match.SkillGap{}, nil
	}

	_, gaps, err := matching.AnalyzeGaps(p, named)
	if err != nil {
		return nil, err
	}
	return gaps, nil
}

func (u *Matching) Analytics(ctx context.Context, vacancyID *uuid.UUID) (matching.Analytics, error) {
	if u.results == nil {
		return matching.Summarize(nil), nil
	}
	results, err := u.results.List(ctx, repository.MatchResultFilter{VacancyID: vacancyID})
	if err != nil {
		return matching.Analytics{}, fmt.Errorf("list match results: %w", err)
	}
	return matching.Summarize(results), nil
}

// DevelopmentPlan recommends what the profile should learn for the vacancy, plus trending skills
// the vacancy does not already ask for.
func (u *Matching) DevelopmentPlan(ctx context.Context, profileID, vacancyID uuid.UUID) ([]matching.DevelopmentRecommendation, error) {
	p, err := loadProfile(ctx, u.profiles, profileID)
	if err != nil {
		return nil, err
	}
	v, err := loadVacancy(ctx, u.vacancies, vacancyID)
	if err != nil {
		return nil, err
	}

	_, gaps, err := matching.AnalyzeGaps(p, v.Requirements)
	if err != nil {
		return nil, err
	}

	var trending []skill.Skill
	if u.skills != nil {
		all, err := u.skills.ListTrending(ctx, matching.TrendingDemand, trendingLookup+len(v.Requirements))
		if err != nil {
			u.logger.Warn("trending skills unavailable", zap.Error(err))
		}
		required := make(map[uuid.UUID]struct{}, len(v.Requirements))
		for _, r := range v.Requirements {
			required[r.SkillID] = struct{}{}
		}
		for _, s := range all {
			if _, ok := required[s.ID]; ok {
				continue
			}
			if _, ok := p.Skills[s.ID]; ok {
				continue
			}
			trending = append(trending, s)
		}
	}

	return matching.DevelopmentPlan(gaps, trending), nil
}

func loadProfile(ctx context.Context, repo repository.ProfileRepository, id uuid.UUID) (talent.Profile, error) {
	if id == uuid.Nil {
		return talent.Profile{}, ErrProfileNotFound
	}
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return talent.Profile{}, ErrProfileNotFound
		}
		return talent.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func loadVacancy(ctx context.Context, repo repository.VacancyRepository, id uuid.UUID) (vacancy.Vacancy, error) {
	if id == uuid.Nil {
		return vacancy.Vacancy{}, ErrVacancyNotFound
	}
	v, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return vacancy.Vacancy{}, ErrVacancyNotFound
		}
		return vacancy.Vacancy{}, fmt.Errorf("load vacancy: %w", err)
	}
	return v, nil
}
