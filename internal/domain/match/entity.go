package match

import (
	"time"

	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities from none (0) to critical (4).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

type Type string

const (
	TypeExact     Type = "exact"
	TypePartial   Type = "partial"
	TypePotential Type = "potential"
	TypeStretch   Type = "stretch"
)

type Recommendation string

const (
	RecommendExcellentFit  Recommendation = "recommended - excellent fit"
	RecommendGoodFit       Recommendation = "recommended - good fit"
	RecommendCriticalFirst Recommendation = "address critical gaps first"
	RecommendDevelopable   Recommendation = "developable candidate"
	RecommendNotAdvised    Recommendation = "not recommended - significant gaps"
)

type SkillGap struct {
	SkillID       uuid.UUID    `json:"skill_id"`
	SkillName     string       `json:"skill_name"`
	RequiredLevel skill.Level  `json:"required_level"`
	CurrentLevel  *skill.Level `json:"current_level,omitempty"`
	Severity      Severity     `json:"severity"`
	IsCritical    bool         `json:"is_critical"`
}

type SkillMatch struct {
	SkillID       uuid.UUID
	SkillName     string
	RequiredLevel skill.Level
	CurrentLevel  *skill.Level
	Weight        float64
	IsCritical    bool
	Score         float64
}

type Scores struct {
	HardSkill  float64
	SoftSkill  float64
	Experience float64
	CultureFit float64
}

// Result is one computed match. It is persisted by (ProfileID, VacancyID), last write wins.
type Result struct {
	ProfileID      uuid.UUID
	VacancyID      uuid.UUID
	Scores         Scores
	Total          float64
	Type           Type
	SkillMatches   []SkillMatch
	Gaps           []SkillGap
	Confidence     float64
	Recommendation Recommendation
	Strengths      []string
	Concerns       []string
	Availability   string
	Explanation    string
	ComputedAt     time.Time
}

// HasCriticalGap reports whether any gap is critical.
func (r Result) HasCriticalGap() bool {
	for _, g := range r.Gaps {
		if g.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// Ranked is one row of a ranking: SubjectID is the profile (candidate search) or vacancy (role search).
type Ranked struct {
	Rank      int
	SubjectID uuid.UUID
	Result    Result
}
