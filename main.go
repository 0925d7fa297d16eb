package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	m "cryptoforecast/data/models"
	r "cryptoforecast/data/repos"
	cg "cryptoforecast/service/api/coingecko"
	"cryptoforecast/service/config"
	c "cryptoforecast/service/core"
	"cryptoforecast/service/logging"
)

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup so they finish before the process exits.
func run() int {
	// interrupt cancels in-flight requests and queries
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// load in environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Printf("invalid configuration: %v", err)
		return 1
	}

	logger, err := logging.New(cfg.OutputDir, time.Now(), os.Stdout)
	if err != nil {
		log.Printf("failed to initialize logger: %v", err)
		return 1
	}
	defer logger.Close()

	cgClient, err := cg.GetClient(cfg.CoinGeckoBaseUrl)
	if err != nil {
		logger.Error("Failed to build coingecko client", zap.Error(err))
		return 1
	}

	sc := c.ServiceContext{
		Context:    ctx,
		Logger:     logger.Logger,
		MarketData: cgClient,
		OpenStore: func(ctx context.Context) (c.PriceStore, error) {
			pg, err := r.GetPostgresConnection(ctx, cfg.DatabaseUrl())
			if err != nil {
				return nil, err
			}
			if err := pg.Ping(ctx); err != nil {
				pg.Close()
				return nil, fmt.Errorf("error pinging postgres database: %w", err)
			}
			return pg, nil
		},
		Assets:    m.DefaultAssets(),
		OutputDir: cfg.OutputDir,
		OpenPlot:  browser.OpenFile,
	}

	if _, err := sc.RunPipeline(); err != nil {
		logger.Error("Pipeline failed", zap.Error(err))
		return 1
	}

	return 0
}
