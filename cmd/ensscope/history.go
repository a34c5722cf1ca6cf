package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ensScope/internal/chain"
	"ensScope/internal/coin"
	"ensScope/internal/config"
	"ensScope/internal/contracts"
	"ensScope/internal/history"
	"ensScope/internal/model"
	"ensScope/internal/storage"
	"ensScope/internal/storage/postgres"
	"ensScope/internal/subgraph"
)

func runHistory(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadHistory(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.SubgraphURL == "" {
		return fmt.Errorf("subgraph url is required")
	}
	if cfg.Detail && cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required with --detail")
	}

	network, err := contracts.ParseNetworkID(cfg.Network)
	if err != nil {
		return err
	}
	publicResolver, err := contracts.DefaultTable().Address(network, contracts.PublicResolver)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	indexer := subgraph.New(cfg.SubgraphURL, &http.Client{Timeout: cfg.Timeout})

	var txs history.TransactionSource
	if cfg.RPCURL != "" {
		chainClient, err := chain.NewClientWithHTTP(ctx, cfg.RPCURL, &http.Client{Timeout: cfg.Timeout})
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()
		txs = chainClient
	}

	svc, err := history.NewService(indexer, txs, coin.DefaultRegistry(), logger)
	if err != nil {
		return err
	}

	sinks, closeSinks, err := openSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSinks()

	name := args[0]
	logger.Info("history start",
		zap.String("name", name),
		zap.String("subgraph", cfg.SubgraphURL),
		zap.String("network", string(network)),
		zap.String("public_resolver", publicResolver),
		zap.Bool("detail", cfg.Detail),
	)

	var h *model.History
	err = withRetry(ctx, logger, cfg.MaxRetries, cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		if cfg.Detail {
			h, err = svc.HistoryWithDetail(ctx, name)
		} else {
			h, err = svc.History(ctx, name)
		}
		return err
	})
	if err != nil {
		return err
	}

	if h == nil {
		logger.Info("domain not found", zap.String("name", name))
		return printJSON(cmd.OutOrStdout(), nil)
	}

	records := h.Records()
	for _, sink := range sinks {
		if err := sink.PutHistoryBatch(ctx, records); err != nil {
			return fmt.Errorf("store history: %w", err)
		}
	}

	logger.Info("history complete",
		zap.Int("domain", len(h.Domain)),
		zap.Int("registration", len(h.Registration)),
		zap.Int("resolver", len(h.Resolver)),
		zap.Int("stored_sinks", len(sinks)),
	)

	return printJSON(cmd.OutOrStdout(), h)
}

func openSinks(ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger) ([]storage.Storage, func(), error) {
	var sinks []storage.Storage
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, closeAll, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			closeAll()
			return nil, func() {}, err
		}
		sinks = append(sinks, store)
		logger.Debug("postgres sink ready")
	}

	return sinks, closeAll, nil
}
