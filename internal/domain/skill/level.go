package skill

import (
	"fmt"
	"strings"
)

// Level is a proficiency tier. The five levels form a total order.
type Level string

const (
	LevelNovice       Level = "novice"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

var levelOrdinals = map[Level]int{
	LevelNovice:       1,
	LevelBeginner:     2,
	LevelIntermediate: 3,
	LevelAdvanced:     4,
	LevelExpert:       5,
}

// Levels lists every level in ascending order.
func Levels() []Level {
	return []Level{LevelNovice, LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}
}

// Ordinal returns 1 for novice through 5 for expert, 0 for an unknown level.
func (l Level) Ordinal() int {
	return levelOrdinals[l]
}

func (l Level) Valid() bool {
	return l.Ordinal() > 0
}

func ParseLevel(raw string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(raw)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown skill level %q", raw)
	}
	return l, nil
}
