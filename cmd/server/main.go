package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/paper-trading/internal/api"
	"github.com/rxtech-lab/paper-trading/internal/config"
	"github.com/rxtech-lab/paper-trading/internal/logger"
	"github.com/rxtech-lab/paper-trading/internal/marketdata"
	"github.com/rxtech-lab/paper-trading/internal/session"
	"github.com/rxtech-lab/paper-trading/internal/types"
)

// serveAction wires the price feed, session manager and HTTP API together
// and serves until the process is stopped.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	providerType, err := marketdata.ParseProviderType(cfg.Provider)
	if err != nil {
		return err
	}

	feed, err := marketdata.NewPriceFeed(providerType, os.Getenv("POLYGON_API_KEY"))
	if err != nil {
		return fmt.Errorf("failed to create price feed: %w", err)
	}

	benchmark := marketdata.NewBenchmarkFeed(feed, cfg.BenchmarkSymbol)
	sessions := session.NewManager(decimal.NewFromFloat(cfg.InitialBalance), cfg.Universe, feed, log)
	server := api.NewServer(sessions, feed, benchmark, cfg.RSIWindow, types.Period(cfg.LookbackPeriod), log)

	log.Info("Paper trading server listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("provider", cfg.Provider),
		zap.Strings("universe", cfg.Universe),
	)

	return http.ListenAndServe(cfg.ListenAddr, server.Handler())
}

func main() {
	// Load .env if present; API keys come from the environment.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "paper-trading",
		Usage: "Run the paper trading ledger server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
