// Command talentctl runs the matching service and its operations from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"talent-match/internal/app"
	"talent-match/internal/config"
	"talent-match/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "talentctl"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Skill graph, matching and ranking for internal mobility",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is talent-match.yaml in the current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	rootCmd.AddCommand(matchCmd, candidatesCmd, rolesCmd, gapsCmd, planCmd, analyticsCmd)
	rootCmd.AddCommand(skillsCmd)
}

// loadConfig reads the config file and environment, with persistent flags taking precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if err := bindFlags(v, cmd); err != nil {
		return config.Config{}, err
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlag("app.debug", cmd.Flags().Lookup("debug")); err != nil {
		return err
	}
	return v.BindPFlag("app.log_json", cmd.Flags().Lookup("json"))
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	lg, err := logger.New(cfg.App.LogJSON, cfg.App.Debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return lg, nil
}

// withContainer wires the full container for one command and tears it down afterwards.
// Seeding never runs implicitly from the CLI; use the seed command.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Database.RunSeeders = false

	lg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	ctx := cmd.Context()
	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Warn("close container", zap.Error(err))
		}
	}()

	return fn(ctx, c)
}
