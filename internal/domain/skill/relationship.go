package skill

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RelationshipType string

const (
	RelationshipPrerequisite RelationshipType = "prerequisite"
	RelationshipComplement   RelationshipType = "complement"
	RelationshipAlternative  RelationshipType = "alternative"
	RelationshipUpgrade      RelationshipType = "upgrade"
)

func (t RelationshipType) Valid() bool {
	switch t {
	case RelationshipPrerequisite, RelationshipComplement, RelationshipAlternative, RelationshipUpgrade:
		return true
	}
	return false
}

func ParseRelationshipType(raw string) (RelationshipType, error) {
	t := RelationshipType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown relationship type %q", raw)
	}
	return t, nil
}

// ReverseKey is the group key under which incoming edges of type t are returned.
func ReverseKey(t RelationshipType) string {
	return string(t) + "_reverse"
}

type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// Relationship is a typed, weighted edge. (FromSkillID, ToSkillID, Type) is unique.
type Relationship struct {
	ID          uuid.UUID
	FromSkillID uuid.UUID
	ToSkillID   uuid.UUID
	Type        RelationshipType
	Strength    float64
	CreatedAt   time.Time
}

// RelatedSkill is one edge seen from a given skill, with the skill on the other end.
type RelatedSkill struct {
	RelationshipID uuid.UUID
	SkillID        uuid.UUID
	SkillName      string
	Category       Category
	Type           RelationshipType
	Strength       float64
	Direction      Direction
}

// RelationshipGroups maps a relationship type (or its reverse key) to edges.
type RelationshipGroups map[string][]RelatedSkill
