package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/shahanth4444/dex-amm/internal/config"
	"github.com/shahanth4444/dex-amm/internal/handler"
	"github.com/shahanth4444/dex-amm/internal/logging"
	"github.com/shahanth4444/dex-amm/internal/service"
	"github.com/shahanth4444/dex-amm/internal/store"
	"github.com/shahanth4444/dex-amm/internal/token"
	"github.com/shahanth4444/dex-amm/pkg/amm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	app := fiber.New()
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	journal, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open event journal: %w", err)
	}

	ledger := token.NewLedger()
	pool, err := amm.NewPool(cfg.TokenA, cfg.TokenB, ledger, journal)
	if err != nil {
		_ = journal.Close()
		return fmt.Errorf("failed to create pool: %w", err)
	}

	poolService := service.NewPoolService(logger, pool, journal)
	tokenService := service.NewTokenService(logger, ledger)
	poolHandler := handler.NewPoolHandler(logger, poolService)
	tokenHandler := handler.NewTokenHandler(logger, tokenService)

	app.Post("/liquidity/add", poolHandler.AddLiquidity())
	app.Post("/liquidity/remove", poolHandler.RemoveLiquidity())
	app.Post("/swap", poolHandler.Swap())
	app.Get("/price", poolHandler.Price())
	app.Get("/reserves", poolHandler.Reserves())
	app.Get("/quote", poolHandler.Quote())
	app.Get("/shares", poolHandler.Shares())
	app.Get("/events", poolHandler.Events())
	app.Post("/faucet", tokenHandler.Faucet())
	app.Get("/balance", tokenHandler.Balance())

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			_ = journal.Close()
			return fmt.Errorf("server error: %w", err)
		}
		_ = journal.Close()
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_ = app.Shutdown()

	_ = journal.Close()

	<-shutdownCtx.Done()
	return nil
}
