package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/Tippspiel_Go/internal/bettable"
	"github.com/osse101/Tippspiel_Go/internal/concurrency"
	"github.com/osse101/Tippspiel_Go/internal/config"
	"github.com/osse101/Tippspiel_Go/internal/database"
	"github.com/osse101/Tippspiel_Go/internal/database/postgres"
	"github.com/osse101/Tippspiel_Go/internal/engine"
	"github.com/osse101/Tippspiel_Go/internal/schedule"
	"github.com/osse101/Tippspiel_Go/internal/server"
	"github.com/osse101/Tippspiel_Go/internal/statistics"
	"github.com/osse101/Tippspiel_Go/internal/user"
	"github.com/osse101/Tippspiel_Go/migrations"
)

const (
	dbMaxConns    = 10
	dbMaxIdleTime = 5 * time.Minute
	dbMaxLifetime = time.Hour

	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connString := cfg.GetDBConnString()
	if err := runMigrations(connString); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.NewPool(ctx, connString, dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	bettableRepo := postgres.NewBettableRepository(pool)
	betRepo := postgres.NewBetRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	propagationRepo := postgres.NewPropagationRepository(pool)

	// Services. Engine and statistics share one lock manager so admin
	// recomputes serialize against running cascades.
	lockManager := concurrency.NewLockManager()
	userService := user.NewService(userRepo, betRepo)
	bettableService := bettable.NewService(bettableRepo, betRepo)
	statisticsService := statistics.NewService(betRepo, bettableRepo, statsRepo, userRepo, lockManager)
	engineService := engine.NewService(propagationRepo, cfg.PointsTable(), lockManager, statisticsService)
	scheduleService := schedule.NewService(bettableService)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool,
		userService, bettableService, engineService, statisticsService, scheduleService, betRepo)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// runMigrations brings the schema up to date using the embedded goose
// migration scripts
func runMigrations(connString string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
