package usecase

import (
	"context"
	"errors"
	"fmt"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"
	"talent-match/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RankingCandidates = "candidates"
	RankingRoles      = "roles"

	defaultRankingLimit   = 20
	maxRankingLimit       = 200
	defaultRankingWorkers = 8
)

type RankingParams struct {
	Limit          int
	MinScore       float64
	IncludeStretch bool
}

// RankingResult is an ordered ranking plus how many pairs were evaluated and how many were skipped.
type RankingResult struct {
	Items     []match.Ranked
	Evaluated int
	Skipped   int
}

type RankingUsecase interface {
	FindCandidates(ctx context.Context, vacancyID uuid.UUID, p RankingParams) (RankingResult, error)
	FindRoles(ctx context.Context, profileID uuid.UUID, p RankingParams) (RankingResult, error)
}

type RankingOptions struct {
	Workers      int
	RateLimit    float64
	DefaultLimit int
	MaxLimit     int
}

type Ranking struct {
	profiles  repository.ProfileRepository
	vacancies repository.VacancyRepository
	results   repository.MatchResultRepository
	engine    *matching.Engine
	notifier  MatchNotifier
	logger    *zap.Logger
	opts      RankingOptions
}

// NewRankingUsecase builds the ranking orchestrator. results may be nil, in which case candidate
// rankings are not persisted.
func NewRankingUsecase(profiles repository.ProfileRepository, vacancies repository.VacancyRepository, results repository.MatchResultRepository, engine *matching.Engine, notifier MatchNotifier, opts RankingOptions, logger *zap.Logger) *Ranking {
	if engine == nil {
		engine = matching.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultRankingWorkers
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultRankingLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = maxRankingLimit
	}
	if opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = opts.MaxLimit
	}
	return &Ranking{
		profiles:  profiles,
		vacancies: vacancies,
		results:   results,
		engine:    engine,
		notifier:  notifier,
		logger:    logger.Named("ranking"),
		opts:      opts,
	}
}

func (u *Ranking) rankOptions(p RankingParams) (matching.RankOptions, error) {
	if p.MinScore < 0 || p.MinScore > 1 {
		return matching.RankOptions{}, fmt.Errorf("%w: min_score must be within [0,1]", ErrInvalidInput)
	}
	if p.Limit < 0 {
		return matching.RankOptions{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	limit := p.Limit
	if limit == 0 {
		limit = u.opts.DefaultLimit
	}
	if limit > u.opts.MaxLimit {
		limit = u.opts.MaxLimit
	}
	return matching.RankOptions{Limit: limit, MinScore: p.MinScore, IncludeStretch: p.IncludeStretch}, nil
}

// FindCandidates ranks active, mobility-ready profiles for a vacancy. Every evaluated pair is
// stored; a pair whose result cannot be written counts as skipped.
func (u *Ranking) FindCandidates(ctx context.Context, vacancyID uuid.UUID, p RankingParams) (RankingResult, error) {
	opts, err := u.rankOptions(p)
	if err != nil {
		return RankingResult{}, err
	}
	v, err := loadVacancy(ctx, u.vacancies, vacancyID)
	if err != nil {
		return RankingResult{}, err
	}
	if err := matching.ValidateRequirements(v.Requirements); err != nil {
		return RankingResult{}, err
	}

	ids, err := u.profiles.ListEligibleIDs(ctx)
	if err != nil {
		return RankingResult{}, fmt.Errorf("list eligible profiles: %w", err)
	}

	res, err := u.fanOut(ctx, ids, opts, func(ctx context.Context, id uuid.UUID) (match.Result, error) {
		prof, err := loadProfile(ctx, u.profiles, id)
		if err != nil {
			return match.Result{}, err
		}
		r, err := u.engine.Evaluate(prof, v)
		if err != nil {
			return match.Result{}, err
		}
		if u.results != nil {
			if err := u.results.Upsert(ctx, r); err != nil {
				return match.Result{}, fmt.Errorf("store match result: %w", err)
			}
		}
		return r, nil
	})
	if err != nil {
		return RankingResult{}, err
	}
	u.finish(RankingCandidates, vacancyID, res)
	return res, nil
}

// FindRoles ranks open vacancies for a profile. Results are not stored.
func (u *Ranking) FindRoles(ctx context.Context, profileID uuid.UUID, p RankingParams) (RankingResult, error) {
	opts, err := u.rankOptions(p)
	if err != nil {
		return RankingResult{}, err
	}
	prof, err := loadProfile(ctx, u.profiles, profileID)
	if err != nil {
		return RankingResult{}, err
	}

	ids, err := u.vacancies.ListOpenIDs(ctx)
	if err != nil {
		return RankingResult{}, fmt.Errorf("list open vacancies: %w", err)
	}

	res, err := u.fanOut(ctx, ids, opts, func(ctx context.Context, id uuid.UUID) (match.Result, error) {
		v, err := loadVacancy(ctx, u.vacancies, id)
		if err != nil {
			return match.Result{}, err
		}
		return u.engine.Evaluate(prof, v)
	})
	if err != nil {
		return RankingResult{}, err
	}
	u.finish(RankingRoles, profileID, res)
	return res, nil
}

func (u *Ranking) fanOut(ctx context.Context, ids []uuid.UUID, opts matching.RankOptions, eval func(context.Context, uuid.UUID) (match.Result, error)) (RankingResult, error) {
	results := make([]match.Result, len(ids))
	errs, err := worker.RunAll(ctx, u.opts.Workers, u.opts.RateLimit, len(ids), func(ctx context.Context, i int) error {
		r, err := eval(ctx, ids[i])
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return RankingResult{}, err
	}

	scored := make([]matching.Scored, 0, len(ids))
	skipped := 0
	for i, id := range ids {
		if errs[i] != nil {
			skipped++
			u.logPairSkipped(id, errs[i])
			continue
		}
		scored = append(scored, matching.Scored{SubjectID: id, Result: results[i]})
	}

	return RankingResult{
		Items:     matching.Rank(scored, opts),
		Evaluated: len(scored),
		Skipped:   skipped,
	}, nil
}

func (u *Ranking) logPairSkipped(id uuid.UUID, err error) {
	fields := []zap.Field{zap.String("subject_id", id.String()), zap.Error(err)}
	switch {
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrVacancyNotFound):
		u.logger.Info("pair skipped, subject disappeared", fields...)
	case errors.Is(err, matching.ErrValidation):
		u.logger.Warn("pair skipped, invalid data", fields...)
	default:
		u.logger.Error("pair skipped", fields...)
	}
}

func (u *Ranking) finish(kind string, subjectID uuid.UUID, res RankingResult) {
	u.logger.Info("ranking completed",
		zap.String("kind", kind),
		zap.String("subject_id", subjectID.String()),
		zap.Int("results", len(res.Items)),
		zap.Int("evaluated", res.Evaluated),
		zap.Int("skipped", res.Skipped),
	)
	if u.notifier != nil {
		u.notifier.RankingCompleted(kind, subjectID, len(res.Items), res.Skipped)
	}
}

var (
	_ RankingUsecase    = (*Ranking)(nil)
	_ MatchingUsecase   = (*Matching)(nil)
	_ SkillGraphUsecase = (*SkillGraph)(nil)
)
