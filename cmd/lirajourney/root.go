package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/vytor/lirajourney/internal/config"
	"github.com/vytor/lirajourney/internal/db"
	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/repository/sqlite"
	"github.com/vytor/lirajourney/internal/services"
)

type commandContext struct {
	logLevel *string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newRootCommand() *cobra.Command {
	var logLevel string
	ctx := &commandContext{logLevel: &logLevel}

	rootCmd := &cobra.Command{
		Use:           "lirajourney",
		Short:         "Static site generator for the King Lear German vocabulary journeys",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newQueueCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	return rootCmd
}

// ensureConfig loads and validates the configuration once and installs the
// default logger at the configured level.
func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		cfg := config.Load()
		if c.logLevel != nil && strings.TrimSpace(*c.logLevel) != "" {
			cfg.LogLevel = strings.ToUpper(strings.TrimSpace(*c.logLevel))
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		logger.SetDefault(logger.New(
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithAutoColors(),
		))
		c.config = cfg
	})
	return c.config, c.configErr
}

// withDB opens the history database for the duration of fn.
func (c *commandContext) withDB(fn func(database *db.DB) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	database, err := db.Open(cfg.HistoryDBPath)
	if err != nil {
		return err
	}
	defer func() {
		logger.Debug("closing database connection")
		database.Close()
	}()
	return fn(database)
}

func (c *commandContext) withHistory(fn func(history services.HistoryService) error) error {
	return c.withDB(func(database *db.DB) error {
		return fn(services.NewHistoryService(sqlite.NewRunRepository(database.DB), sqlite.NewPageRepository(database.DB)))
	})
}
