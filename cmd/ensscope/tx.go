package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ensScope/internal/chain"
	"ensScope/internal/coin"
	"ensScope/internal/config"
	"ensScope/internal/history"
)

func runTx(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadTx(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	hash, err := parseTxHash(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	chainClient, err := chain.NewClientWithHTTP(ctx, cfg.RPCURL, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	svc, err := history.NewService(nil, chainClient, coin.DefaultRegistry(), logger)
	if err != nil {
		return err
	}

	logger.Info("tx decode start", zap.String("tx_hash", hash), zap.Int("index", cfg.Index))

	var result interface{}
	err = withRetry(ctx, logger, cfg.MaxRetries, cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		if cfg.Index >= 0 {
			result, err = svc.TransactionTextRecord(ctx, hash, cfg.Index)
		} else {
			result, err = svc.TransactionTextRecords(ctx, hash)
		}
		return err
	})
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), result)
}

func parseTxHash(input string) (string, error) {
	data, err := hexutil.Decode(input)
	if err != nil {
		return "", fmt.Errorf("invalid tx hash %q: %w", input, err)
	}
	if len(data) != common.HashLength {
		return "", fmt.Errorf("invalid tx hash length: %s", input)
	}
	return common.BytesToHash(data).Hex(), nil
}
