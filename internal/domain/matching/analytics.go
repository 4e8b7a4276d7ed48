package matching

import (
	"math"
	"sort"

	"talent-match/internal/domain/match"
)

const topGapLimit = 10

type GapCount struct {
	SkillName string
	Count     int
}

type ScoreRanges struct {
	Excellent int
	Good      int
	Fair      int
	Poor      int
}

type Analytics struct {
	TotalMatches int
	AverageScore float64
	Distribution map[match.Type]int
	TopGaps      []GapCount
	ScoreRanges  ScoreRanges
}

// Summarize aggregates stored results. The tier is recomputed from the total so that
// results persisted under older thresholds are bucketed consistently.
func Summarize(results []match.Result) Analytics {
	out := Analytics{Distribution: map[match.Type]int{}, TopGaps: []GapCount{}}
	if len(results) == 0 {
		return out
	}

	gapCounts := map[string]int{}
	var sum float64
	for _, r := range results {
		sum += r.Total
		out.Distribution[Classify(r.Total)]++

		switch {
		case r.Total >= thresholdExact:
			out.ScoreRanges.Excellent++
		case r.Total >= thresholdPartial:
			out.ScoreRanges.Good++
		case r.Total >= thresholdPotential:
			out.ScoreRanges.Fair++
		default:
			out.ScoreRanges.Poor++
		}

		for _, g := range r.Gaps {
			name := g.SkillName
			if name == "" {
				name = "unknown"
			}
			gapCounts[name]++
		}
	}

	out.TotalMatches = len(results)
	out.AverageScore = math.Round(sum/float64(len(results))*100) / 100

	for name, n := range gapCounts {
		out.TopGaps = append(out.TopGaps, GapCount{SkillName: name, Count: n})
	}
	sort.Slice(out.TopGaps, func(i, j int) bool {
		if out.TopGaps[i].Count != out.TopGaps[j].Count {
			return out.TopGaps[i].Count > out.TopGaps[j].Count
		}
		return out.TopGaps[i].SkillName < out.TopGaps[j].SkillName
	})
	if len(out.TopGaps) > topGapLimit {
		out.TopGaps = out.TopGaps[:topGapLimit]
	}

	return out
}
