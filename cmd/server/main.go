package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ignatzorin/starwars-backend/internal/config"
	"github.com/ignatzorin/starwars-backend/internal/db"
	httpHandlers "github.com/ignatzorin/starwars-backend/internal/http/handlers"
	"github.com/ignatzorin/starwars-backend/internal/http/middleware"
	httpRouter "github.com/ignatzorin/starwars-backend/internal/http/router"
	"github.com/ignatzorin/starwars-backend/internal/logger"
	"github.com/ignatzorin/starwars-backend/internal/repository"
	"github.com/ignatzorin/starwars-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.IsDevelopment() {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	applied, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath)
	if err != nil {
		logger.Log.Fatalf("main: ошибка миграций: %v", err)
	}
	logger.Log.Infof("main: применено миграций: %d", applied)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	characterRepo := repository.NewCharacterRepository(dbConn)
	planetRepo := repository.NewPlanetRepository(dbConn)
	favoriteRepo := repository.NewFavoriteRepository(dbConn)

	// Сервисы.
	favoriteService := service.NewFavoriteService(userRepo, characterRepo, planetRepo, favoriteRepo)
	seedService := service.NewSeedService(dbConn, service.DefaultDataset())

	if cfg.SeedOnStart {
		if _, err := seedService.Seed(ctx); err != nil {
			logger.Log.Fatalf("main: ошибка наполнения базы: %v", err)
		}
	}

	// Метрики.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(dbConn.DB, "starwars"),
	)
	metrics := middleware.NewMetrics(registry)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Users:     httpHandlers.NewUserHandler(userRepo),
		Catalog:   httpHandlers.NewCatalogHandler(characterRepo, planetRepo),
		Favorites: httpHandlers.NewFavoriteHandler(favoriteService),
		Health:    httpHandlers.NewHealthHandler(dbConn),
		Seed:      httpHandlers.NewSeedHandler(seedService),
	}, metrics)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Log.Fatalf("main: не удалось открыть порт %s: %v", cfg.HTTPPort, err)
	}

	logger.Log.Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	// serve возвращается после Shutdown, поэтому отложенный safeClose
	// закрывает базу только когда текущие запросы завершились.
	if err := serve(ctx, server, ln, cfg.ShutdownTimeout); err != nil {
		logger.Log.Errorf("main: %v", err)
		return
	}
	logger.Log.Info("main: сервер остановлен")
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.Errorf("main: ошибка закрытия базы: %v", err)
	}
}
