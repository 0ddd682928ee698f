// Command migrate applies the embedded SQL migrations with goose.
//
// Usage: migrate [up|down|status|version]   (default: up)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/myenglish-catalog/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-catalog/internal/app"
	"github.com/heartmarshall/myenglish-catalog/internal/config"
	"github.com/heartmarshall/myenglish-catalog/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg.Database, command, logger); err != nil {
		logger.Error("migrate failed", slog.String("command", command), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.DatabaseConfig, command string, logger *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("up: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", len(results)))
	case "down":
		res, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("down: %w", err)
		}
		if res != nil && res.Source != nil {
			logger.Info("migration rolled back", slog.Int64("version", res.Source.Version))
		}
	case "status":
		return printStatus(ctx, provider)
	case "version":
		v, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		fmt.Println(v)
	default:
		return fmt.Errorf("unknown command %q (want up, down, status or version)", command)
	}
	return nil
}

func printStatus(ctx context.Context, provider *goose.Provider) error {
	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	for _, s := range statuses {
		applied := "pending"
		if s.State == goose.StateApplied {
			applied = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Printf("%5d  %-22s  %s\n", s.Source.Version, applied, s.Source.Path)
	}
	return nil
}
