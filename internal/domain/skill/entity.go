package skill

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryTechnical     Category = "technical"
	CategorySoft          Category = "soft"
	CategoryLanguage      Category = "language"
	CategoryCertification Category = "certification"
	CategoryDomain        Category = "domain"
	CategoryTool          Category = "tool"
	CategoryFramework     Category = "framework"
	CategoryMethodology   Category = "methodology"
)

var categories = []Category{
	CategoryTechnical,
	CategorySoft,
	CategoryLanguage,
	CategoryCertification,
	CategoryDomain,
	CategoryTool,
	CategoryFramework,
	CategoryMethodology,
}

func (c Category) Valid() bool {
	for _, it := range categories {
		if it == c {
			return true
		}
	}
	return false
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown skill category %q", raw)
	}
	return c, nil
}

// Skill is a taxonomy node. Skills are never deleted, only deactivated.
type Skill struct {
	ID           uuid.UUID
	Name         string
	Category     Category
	Description  string
	ParentID     *uuid.UUID
	Path         string
	Depth        int
	Embedding    []float32
	Popularity   float64
	MarketDemand float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NameKey is the case-insensitive uniqueness key of a skill name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// EmbeddingText is the text a skill's embedding is computed from.
func EmbeddingText(name, description string, category Category) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{name, description, string(category)} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Hierarchy returns the path and depth of a skill placed under parent.
func Hierarchy(name string, parent *Skill) (string, int) {
	if parent == nil {
		return name, 1
	}
	return parent.Path + " > " + name, parent.Depth + 1
}

type SearchResult struct {
	Skill      Skill
	Similarity float64
}
