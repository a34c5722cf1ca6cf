package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ensScope/internal/chain"
	"ensScope/internal/config"
	"ensScope/internal/contracts"
)

func runContracts(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadContracts(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	networkInput := cfg.Network
	if networkInput == "" {
		if cfg.RPCURL == "" {
			return fmt.Errorf("network or rpc url is required")
		}

		ctx, stop := signalContext()
		defer stop()

		chainClient, err := chain.NewClientWithHTTP(ctx, cfg.RPCURL, &http.Client{Timeout: cfg.Timeout})
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()

		chainID, err := chainClient.GetChainID(ctx)
		if err != nil {
			return fmt.Errorf("get chain id: %w", err)
		}
		networkInput = chainID.String()
		logger.Info("network from rpc", zap.String("chain_id", networkInput))
	}

	network, err := contracts.ParseNetworkID(networkInput)
	if err != nil {
		return err
	}

	table := contracts.DefaultTable()
	fetch := table.Fetcher(network)
	addresses := make(map[contracts.ContractName]string)
	for _, name := range table.Contracts() {
		addr, err := fetch(name)
		if err != nil {
			return err
		}
		addresses[name] = addr
	}

	return printJSON(cmd.OutOrStdout(), addresses)
}
