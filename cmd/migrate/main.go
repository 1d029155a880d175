package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ignatzorin/starwars-backend/internal/config"
	"github.com/ignatzorin/starwars-backend/internal/db"
	"github.com/ignatzorin/starwars-backend/internal/logger"
)

const usage = `usage: migrate <command> [flags]

commands:
  up               apply all pending migrations
  down [-steps N]  revert the last N applied migrations (default 1)
  status           list migrations and whether they are applied
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.SetTextFormatter()

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("migrate: %v", err)
	}
	defer conn.Close()

	migrator, err := db.NewMigrator(conn, os.DirFS(cfg.MigrationsPath))
	if err != nil {
		logger.Log.Fatalf("migrate: %v", err)
	}

	switch os.Args[1] {
	case "up":
		n, err := migrator.Up(ctx)
		if err != nil {
			logger.Log.Fatalf("migrate: применено %d, ошибка: %v", n, err)
		}
		logger.Log.Infof("migrate: применено миграций: %d", n)

	case "down":
		fs := flag.NewFlagSet("down", flag.ExitOnError)
		steps := fs.Int("steps", 1, "number of migrations to revert")
		_ = fs.Parse(os.Args[2:])

		n, err := migrator.Down(ctx, *steps)
		if err != nil {
			logger.Log.Fatalf("migrate: откачено %d, ошибка: %v", n, err)
		}
		logger.Log.Infof("migrate: откачено миграций: %d", n)

	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			logger.Log.Fatalf("migrate: %v", err)
		}
		for _, st := range statuses {
			state := "pending"
			if st.Applied {
				state = "applied " + st.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%04d_%s\t%s\n", st.Version, st.Name, state)
		}

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
