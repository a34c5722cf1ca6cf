package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ensscope",
		Short:        "ENS history and record inspection",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	historyCmd := &cobra.Command{
		Use:   "history NAME",
		Short: "Print the domain, registration and resolver history of a name",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}

	historyCmd.Flags().String("subgraph", "", "ENS subgraph GraphQL URL")
	historyCmd.Flags().String("rpc", "", "JSON-RPC URL (required with --detail)")
	historyCmd.Flags().String("network", "88", "network id used for contract lookups")
	historyCmd.Flags().Bool("detail", false, "join text record values from their transactions")
	historyCmd.Flags().String("out", "", "append history records to this JSONL file")
	historyCmd.Flags().String("pg-dsn", "", "persist history records to Postgres")
	addCommonFlags(historyCmd)

	root.AddCommand(historyCmd)

	txCmd := &cobra.Command{
		Use:   "tx HASH",
		Short: "Decode the text records written by a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runTx,
	}

	txCmd.Flags().String("rpc", "", "JSON-RPC URL")
	txCmd.Flags().Int("index", -1, "position of a single setText call in the transaction")
	addCommonFlags(txCmd)

	root.AddCommand(txCmd)

	contractsCmd := &cobra.Command{
		Use:   "contracts",
		Short: "Print contract addresses for a network",
		Args:  cobra.NoArgs,
		RunE:  runContracts,
	}

	contractsCmd.Flags().String("network", "", "network id (defaults to the chain id of --rpc)")
	contractsCmd.Flags().String("rpc", "", "JSON-RPC URL")
	addCommonFlags(contractsCmd)

	root.AddCommand(contractsCmd)

	storedCmd := &cobra.Command{
		Use:   "stored NAME",
		Short: "Print history records persisted in Postgres",
		Args:  cobra.ExactArgs(1),
		RunE:  runStored,
	}

	storedCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	addCommonFlags(storedCmd)

	root.AddCommand(storedCmd)

	return root
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-retries", 3, "maximum retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	cmd.Flags().Duration("timeout", 30*time.Second, "HTTP request timeout")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func printJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
