package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"talent-match/internal/domain/skill"
)

const (
	skillSearchPrefix   = "skills:search:"
	skillSearchCacheTTL = 5 * time.Minute
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type skillSearchCacheKeyInput struct {
	Query      string   `json:"query"`
	Limit      int      `json:"limit"`
	Threshold  float64  `json:"threshold"`
	Categories []string `json:"categories"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func SkillSearchCacheKey(query string, limit int, threshold float64, categories []skill.Category) string {
	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)

	in := skillSearchCacheKeyInput{
		Query:      normalizeSearchValue(query),
		Limit:      limit,
		Threshold:  threshold,
		Categories: cats,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return skillSearchPrefix + hex.EncodeToString(sum[:])
}
