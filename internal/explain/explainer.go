// Package explain writes short natural-language summaries of match results.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"talent-match/internal/domain/match"
	"talent-match/internal/domain/talent"
	"talent-match/internal/domain/vacancy"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var sleep = sleepContext

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ErrUnavailable reports that the generator produced nothing usable.
var ErrUnavailable = errors.New("explanation unavailable")

type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	Timeout    time.Duration
	MaxRetries int
}

// Explainer never fails a match: on any generator problem it returns Fallback.
type Explainer struct {
	gen     Generator
	timeout time.Duration
	retries int
	logger  *zap.Logger
}

// New returns an Explainer. A nil generator always yields the fallback text.
func New(gen Generator, opts Options, logger *zap.Logger) *Explainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 2
	}
	return &Explainer{gen: gen, timeout: opts.Timeout, retries: opts.MaxRetries, logger: logger.Named("explain")}
}

func (e *Explainer) Explain(ctx context.Context, p talent.Profile, v vacancy.Vacancy, r match.Result) string {
	if e == nil || e.gen == nil {
		return Fallback(r.Total)
	}

	text, err := e.generate(ctx, BuildPrompt(p, v, r))
	if err != nil {
		e.logger.Warn("match explanation failed, using fallback",
			zap.String("profile_id", p.ID.String()),
			zap.String("vacancy_id", v.ID.String()),
			zap.Error(err),
		)
		return Fallback(r.Total)
	}
	return text
}

func (e *Explainer) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= e.retries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		text, err := e.gen.GenerateContent(callCtx, prompt)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil || !isTemporary(err) {
			break
		}
		if attempt < e.retries {
			if err := sleep(ctx, time.Duration(attempt)*time.Second); err != nil {
				break
			}
		}
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func isTemporary(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	return false
}

// Fallback is the deterministic summary used when no generator answer is available.
func Fallback(total float64) string {
	verdict := "partially fits"
	if total >= 0.7 {
		verdict = "fits"
	}
	return fmt.Sprintf("Match: %.1f%%. Candidate %s this role.", total*100, verdict)
}

type promptProfile struct {
	Name            string            `json:"name"`
	Position        string            `json:"position"`
	Department      string            `json:"department"`
	ExperienceYears float64           `json:"experience_years"`
	Skills          map[string]string `json:"skills"`
}

type promptVacancy struct {
	Title          string            `json:"title"`
	Department     string            `json:"department"`
	MinExperience  *float64          `json:"min_experience"`
	RequiredSkills map[string]string `json:"required_skills"`
}

type promptGap struct {
	SkillName     string  `json:"skill_name"`
	RequiredLevel string  `json:"required_level"`
	CurrentLevel  *string `json:"current_level"`
	Severity      string  `json:"severity"`
}

func BuildPrompt(p talent.Profile, v vacancy.Vacancy, r match.Result) string {
	pp := promptProfile{
		Name:            p.Name,
		Position:        p.RoleTitle,
		Department:      p.Department,
		ExperienceYears: p.ExperienceYears,
		Skills:          make(map[string]string, len(p.Skills)),
	}
	for _, s := range p.Skills {
		pp.Skills[s.SkillName] = string(s.Level)
	}

	pv := promptVacancy{
		Title:          v.Title,
		Department:     v.Department,
		MinExperience:  v.MinExperienceYears,
		RequiredSkills: make(map[string]string, len(v.Requirements)),
	}
	for _, req := range v.Requirements {
		pv.RequiredSkills[req.SkillName] = string(req.MinLevel)
	}

	gaps := make([]promptGap, 0, len(r.Gaps))
	for _, g := range r.Gaps {
		pg := promptGap{SkillName: g.SkillName, RequiredLevel: string(g.RequiredLevel), Severity: string(g.Severity)}
		if g.CurrentLevel != nil {
			cur := string(*g.CurrentLevel)
			pg.CurrentLevel = &cur
		}
		gaps = append(gaps, pg)
	}

	profileJSON, _ := json.Marshal(pp)
	vacancyJSON, _ := json.Marshal(pv)
	gapsJSON, _ := json.Marshal(gaps)

	var b strings.Builder
	b.WriteString("You are an internal mobility advisor. In three or four sentences, explain how well the employee fits the vacancy, ")
	b.WriteString("naming the strongest matching skills and the most important gaps. Plain text, no lists.\n\n")
	fmt.Fprintf(&b, "Employee: %s\n", profileJSON)
	fmt.Fprintf(&b, "Vacancy: %s\n", vacancyJSON)
	fmt.Fprintf(&b, "Match score: %.2f (%s)\n", r.Total, r.Type)
	fmt.Fprintf(&b, "Skill gaps: %s\n", gapsJSON)
	return b.String()
}
