package matching

import (
	"bytes"
	"sort"

	"talent-match/internal/domain/match"

	"github.com/google/uuid"
)

type RankOptions struct {
	Limit          int
	MinScore       float64
	IncludeStretch bool
}

type Scored struct {
	SubjectID uuid.UUID
	Result    match.Result
}

// Rank filters, orders by total descending with ties broken by subject id, numbers the rows
// 1..N and truncates to the limit. A limit of zero or less keeps every row.
func Rank(items []Scored, opts RankOptions) []match.Ranked {
	kept := make([]Scored, 0, len(items))
	for _, it := range items {
		if it.Result.Total < opts.MinScore {
			continue
		}
		if !opts.IncludeStretch && it.Result.Type == match.TypeStretch {
			continue
		}
		kept = append(kept, it)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Result.Total != kept[j].Result.Total {
			return kept[i].Result.Total > kept[j].Result.Total
		}
		return bytes.Compare(kept[i].SubjectID[:], kept[j].SubjectID[:]) < 0
	})

	if opts.Limit > 0 && len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}

	out := make([]match.Ranked, 0, len(kept))
	for i, it := range kept {
		out = append(out, match.Ranked{Rank: i + 1, SubjectID: it.SubjectID, Result: it.Result})
	}
	return out
}
