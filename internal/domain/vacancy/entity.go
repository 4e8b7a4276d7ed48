package vacancy

import (
	"time"

	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusFilled Status = "filled"
)

type Requirement struct {
	SkillID    uuid.UUID
	SkillName  string
	MinLevel   skill.Level
	Weight     float64
	IsCritical bool
}

// RequirementSet is ordered; gap and match lists follow its order.
type RequirementSet []Requirement

type Vacancy struct {
	ID                 uuid.UUID
	Title              string
	Department         string
	Location           string
	MinExperienceYears *float64
	Status             Status
	IsActive           bool
	Requirements       RequirementSet
	CreatedAt          time.Time
}

// Open reports whether the vacancy takes part in roles-for-profile searches.
func (v Vacancy) Open() bool {
	return v.IsActive && v.Status == StatusOpen
}

func (v Vacancy) RequiredExperience() float64 {
	if v.MinExperienceYears == nil {
		return 0
	}
	return *v.MinExperienceYears
}
