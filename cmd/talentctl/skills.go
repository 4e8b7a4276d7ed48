package main

import (
	"context"
	"fmt"
	"strings"

	"talent-match/internal/app"
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/domain/skill"
	"talent-match/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Work with the skill graph",
}

var skillsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantic search over active skills",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		cats, _ := cmd.Flags().GetStringSlice("category")

		p := usecase.SearchSkillsParams{Query: strings.Join(args, " "), Limit: limit}
		if cmd.Flags().Changed("threshold") {
			th, _ := cmd.Flags().GetFloat64("threshold")
			p.Threshold = &th
		}
		for _, c := range cats {
			p.Categories = append(p.Categories, skill.Category(strings.ToLower(strings.TrimSpace(c))))
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			items, err := c.SkillGraph.SearchSkills(ctx, p)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewSkillSearchResponse(items))
		})
	},
}

var skillsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a skill, or return the existing one with the same name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		description, _ := cmd.Flags().GetString("description")
		parent, _ := cmd.Flags().GetString("parent")
		popularity, _ := cmd.Flags().GetFloat64("popularity")
		demand, _ := cmd.Flags().GetFloat64("market-demand")

		in := usecase.CreateSkillInput{
			Name:         strings.Join(args, " "),
			Category:     skill.Category(strings.ToLower(strings.TrimSpace(category))),
			Description:  description,
			Popularity:   popularity,
			MarketDemand: demand,
		}
		if parent != "" {
			pid, err := uuid.Parse(parent)
			if err != nil {
				return fmt.Errorf("invalid parent id %q: %w", parent, err)
			}
			in.ParentID = &pid
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			s, created, err := c.SkillGraph.CreateSkill(ctx, in)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), struct {
				Created bool              `json:"created"`
				Skill   dto.SkillResponse `json:"skill"`
			}{Created: created, Skill: dto.NewSkillResponse(s)})
		})
	},
}

var skillsRelateCmd = &cobra.Command{
	Use:   "relate <from-id> <to-id> <type>",
	Short: "Add or update a typed relationship between two skills",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args[:2], "from skill id", "to skill id")
		if err != nil {
			return err
		}
		relType, err := skill.ParseRelationshipType(args[2])
		if err != nil {
			return err
		}
		strength, _ := cmd.Flags().GetFloat64("strength")

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			rel, err := c.SkillGraph.AddRelationship(ctx, usecase.AddRelationshipInput{
				FromSkillID: ids[0],
				ToSkillID:   ids[1],
				Type:        relType,
				Strength:    strength,
			})
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewRelationshipResponse(rel))
		})
	},
}

var skillsRelationsCmd = &cobra.Command{
	Use:   "relations <skill-id>",
	Short: "Show relationships of a skill grouped by type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args, "skill id")
		if err != nil {
			return err
		}
		rawTypes, _ := cmd.Flags().GetStringSlice("type")
		noReverse, _ := cmd.Flags().GetBool("no-reverse")

		var types []skill.RelationshipType
		for _, raw := range rawTypes {
			t, err := skill.ParseRelationshipType(raw)
			if err != nil {
				return err
			}
			types = append(types, t)
		}

		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			groups, err := c.SkillGraph.GetRelationships(ctx, ids[0], types, !noReverse)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), dto.NewRelationshipGroupsResponse(groups))
		})
	},
}

func init() {
	skillsSearchCmd.Flags().Int("limit", 0, "maximum results (default 10)")
	skillsSearchCmd.Flags().Float64("threshold", 0.7, "minimum cosine similarity")
	skillsSearchCmd.Flags().StringSlice("category", nil, "restrict to categories")

	skillsCreateCmd.Flags().String("category", string(skill.CategoryTechnical), "skill category")
	skillsCreateCmd.Flags().String("description", "", "free text description")
	skillsCreateCmd.Flags().String("parent", "", "parent skill id")
	skillsCreateCmd.Flags().Float64("popularity", 0, "popularity score")
	skillsCreateCmd.Flags().Float64("market-demand", 0, "market demand score")

	skillsRelateCmd.Flags().Float64("strength", 1, "relationship strength in [0,1]")

	skillsRelationsCmd.Flags().StringSlice("type", nil, "relationship types to include")
	skillsRelationsCmd.Flags().Bool("no-reverse", false, "omit incoming relationships")

	skillsCmd.AddCommand(skillsSearchCmd, skillsCreateCmd, skillsRelateCmd, skillsRelationsCmd)
}
