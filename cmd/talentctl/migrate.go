package main

import (
	"context"
	"time"

	"talent-match/internal/app"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lg, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = lg.Sync() }()

		connectCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		db, err := dbpostgres.Connect(connectCtx, cfg.Database, lg)
		if err != nil {
			return err
		}
		defer db.Close()

		return migration.Embedded(lg.Named("migration")).Run(cmd.Context(), db)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the skill taxonomy and sample profiles and vacancies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			if err := c.Seed(ctx); err != nil {
				return err
			}
			n, err := c.Skills.Count(ctx)
			if err != nil {
				return err
			}
			return outputJSON(cmd.OutOrStdout(), map[string]int{"skills": n})
		})
	},
}
