// Точка входа docvault — сервис версионного хранения документов.
// Загружает конфигурацию, готовит файловое хранилище, применяет миграции,
// подключается к PostgreSQL, создаёт сервисный слой и API handlers,
// запускает topologymetrics и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/docvault/internal/api/handlers"
	"github.com/bigkaa/docvault/internal/api/middleware"
	"github.com/bigkaa/docvault/internal/config"
	"github.com/bigkaa/docvault/internal/database"
	"github.com/bigkaa/docvault/internal/repository"
	"github.com/bigkaa/docvault/internal/server"
	"github.com/bigkaa/docvault/internal/service"
	"github.com/bigkaa/docvault/internal/storage/blobstore"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения (и .env, если есть)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("docvault запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Файловое хранилище: каталог создаётся при старте
	store, err := blobstore.New(cfg.StorageDir)
	if err != nil {
		logger.Error("Ошибка инициализации хранилища", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Файловое хранилище готово", slog.String("root", store.Root()))

	// 4. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5.1 Адаптер pgxpool → *sql.DB для topologymetrics
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 6. Репозиторий и кэш метаданных
	fileRepo := repository.NewFileRepository(pool)
	cache := service.NewCacheService(cfg.CacheSize, cfg.CacheTTL)
	if cfg.CacheSize == 0 {
		logger.Info("Кэш метаданных отключён (DV_CACHE_SIZE=0)")
	}

	// 7. Сервисный слой
	resolver := service.NewVersionResolver(fileRepo)
	uploadSvc := service.NewUploadService(fileRepo, resolver, store, cfg.VersionRetries, logger)
	fileSvc := service.NewFileService(fileRepo, store, cache, logger)
	analysisSvc := service.NewAnalysisService(fileRepo, cache, service.MockAnnotator{}, logger)

	// 8. topologymetrics — мониторинг PostgreSQL
	dephealthSvc, dephealthErr := service.NewDephealthService(service.DephealthConfig{
		ServiceID:     "docvault",
		Group:         cfg.DephealthGroup,
		DB:            pgDB,
		PostgresURL:   cfg.DatabaseURL(),
		CheckInterval: cfg.DephealthCheckInterval,
	}, logger)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
		dephealthSvc = nil
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
	} else {
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 9. API handlers
	healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(pool), store)
	apiHandler := handlers.NewAPIHandler(
		healthHandler,
		uploadSvc,
		fileSvc,
		analysisSvc,
		cfg.MaxUploadSize,
		logger,
	)

	// 10. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler,
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 11. Остановка фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("docvault остановлен")
}
