// Command signum runs the multi-timeframe market analysis engine. It polls
// candles from an exchange, evaluates structure, zones and liquidity, and
// publishes trade signals or watch reports.
//
// Usage:
//
//	signum --config config.yaml
//	signum --setup   (interactive configuration wizard)
//	signum           (uses CLI arguments)
//
// Optional environment variables (market data endpoints are public):
//
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET
//	For Hyperliquid: HYPERLIQUID_PRIVATE_KEY (required), HYPERLIQUID_API_URL
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swingdesk/signum/config"
	"github.com/swingdesk/signum/internal"
	"github.com/swingdesk/signum/internal/clients"
	"github.com/swingdesk/signum/internal/services/publisher"
	"github.com/swingdesk/signum/internal/setup"
	"github.com/swingdesk/signum/internal/web"
)

func main() {
	setupFlag := flag.Bool("setup", false, "run the interactive configuration wizard")

	configs, err := config.Get()

	// config.Get parses the flags, so the wizard check has to follow it.
	if *setupFlag {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	for _, conf := range configs {
		client, err := newClient(conf.Platform)
		if err != nil {
			log.Fatal(err)
		}

		bot, err := internal.NewSignalBot(conf, client, publisher.NewLogPublisher(logger), logger)
		if err != nil {
			log.Fatal(err)
		}
		defer bot.Close()

		g.Go(func() error {
			return bot.Run(ctx)
		})

		if conf.WebAddr != "" {
			server := web.NewServer(conf.WebAddr, bot)
			g.Go(func() error {
				return server.Start(ctx)
			})
		}
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Fatal("engine stopped", zap.Error(err))
	}
}

func newClient(platform string) (any, error) {
	switch platform {
	case "binance":
		return clients.NewBinanceClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET")), nil
	case "bybit":
		return clients.NewBybitClient(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET")), nil
	case "hyperliquid":
		return clients.NewHyperliquidClient(os.Getenv("HYPERLIQUID_PRIVATE_KEY"), os.Getenv("HYPERLIQUID_API_URL"))
	default:
		return nil, fmt.Errorf("unsupported platform: %q", platform)
	}
}
