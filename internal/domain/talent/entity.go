package talent

import (
	"time"

	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillLevel struct {
	SkillID         uuid.UUID
	SkillName       string
	Level           skill.Level
	ExperienceYears float64
}

// Profile is the talent side of a match. ExperienceYears of zero means no declared experience.
type Profile struct {
	ID                uuid.UUID
	Name              string
	RoleTitle         string
	Department        string
	Location          string
	ExperienceYears   float64
	DepartmentsWorked []string
	IsActive          bool
	MobilityReady     bool
	AvailableFrom     *time.Time
	Skills            map[uuid.UUID]SkillLevel
}

// LevelOf returns the recorded level for skillID, or nil when the profile lacks the skill.
func (p Profile) LevelOf(skillID uuid.UUID) *skill.Level {
	s, ok := p.Skills[skillID]
	if !ok || !s.Level.Valid() {
		return nil
	}
	lvl := s.Level
	return &lvl
}
