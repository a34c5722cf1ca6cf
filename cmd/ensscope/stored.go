package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ensScope/internal/config"
	"ensScope/internal/history"
	"ensScope/internal/storage/postgres"
)

func runStored(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadStored(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}

	ctx, stop := signalContext()
	defer stop()

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	name, err := history.NormaliseName(args[0])
	if err != nil {
		return err
	}
	events, err := store.LoadHistory(ctx, name)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	last, ok, err := store.LastBlock(ctx, name)
	if err != nil {
		return fmt.Errorf("load last block: %w", err)
	}
	logger.Info("stored history",
		zap.String("name", name),
		zap.Int("events", len(events)),
		zap.Bool("has_events", ok),
		zap.Uint64("last_block", last),
	)

	return printJSON(cmd.OutOrStdout(), events)
}
