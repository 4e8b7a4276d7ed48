package main

import (
	"context"
	"fmt"

	"talent-match/internal/app"
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func parseIDs(args []string, names ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(args))
	for i, raw := range args {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", names[i], raw, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func rankingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "maximum rows (0 uses the configured default)")
	cmd.Flags().Float64("min-score", 0, "drop rows below this total score")
	cmd.Flags().Bool("include-stretch", false, "keep stretch matches")
}

func rankingParamsFrom(cmd *cobra.Command) usecase.RankingParams {
	limit, _ := cmd.Flags().GetInt("limit")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	stretch, _ := cmd.Flags().GetBool("include-stretch")
	return usecase.RankingParams{Limit: limit, MinScore: minScore, IncludeStretch: stretch}
}

var matchCmd = &cobra.Command{
	Use:   "match <profile-id> <vacancy-id>",
	Short: "Compute, explain and store the match for one profile and vacancy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "profile id", "vacancy id")
		if err != nil {
			return err
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			res, err := c.Matching.MatchPair(ctx, ids[0], ids[1])
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewMatchResultResponse(res))
		})
	},
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates <vacancy-id>",
	Short: "Rank eligible profiles for a vacancy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "vacancy id")
		if err != nil {
			return err
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			res, err := c.Ranking.FindCandidates(ctx, ids[0], rankingParamsFrom(cmd))
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewRankingResponse(res.Items, res.Evaluated, res.Skipped))
		})
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles <profile-id>",
	Short: "Rank open vacancies for a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "profile id")
		if err != nil {
			return err
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			res, err := c.Ranking.FindRoles(ctx, ids[0], rankingParamsFrom(cmd))
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewRankingResponse(res.Items, res.Evaluated, res.Skipped))
		})
	},
}

var gapsCmd = &cobra.Command{
	Use:   "gaps <profile-id> <vacancy-id>",
	Short: "List the skill gaps of a profile against a vacancy's requirements",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "profile id", "vacancy id")
		if err != nil {
			return err
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			v, err := c.Vacancies.GetByID(ctx, ids[1])
			if err != nil {
				return fmt.Errorf("%w: %v", usecase.ErrVacancyNotFound, err)
			}
			gaps, err := c.Matching.AnalyzeGaps(ctx, ids[0], v.Requirements)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewGapsResponse(gaps))
		})
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <profile-id> <vacancy-id>",
	Short: "Build a development plan closing the gaps to a vacancy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "profile id", "vacancy id")
		if err != nil {
			return err
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			plan, err := c.Matching.DevelopmentPlan(ctx, ids[0], ids[1])
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewDevelopmentPlanResponse(plan))
		})
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarize stored match results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var vacancyID *uuid.UUID
		if raw, _ := cmd.Flags().GetString("vacancy"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid vacancy id %q: %w", raw, err)
			}
			vacancyID = &id
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			a, err := c.Matching.Analytics(ctx, vacancyID)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewAnalyticsResponse(a))
		})
	},
}

func init() {
	rankingFlags(candidatesCmd)
	rankingFlags(rolesCmd)
	analyticsCmd.Flags().String("vacancy", "", "restrict to one vacancy id")
}
