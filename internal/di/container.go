package di

import (
	"github.com/BarzMap/ParksApp/internal/adapter/cloudflare"
	"github.com/BarzMap/ParksApp/internal/adapter/storage/minio"
	"github.com/BarzMap/ParksApp/internal/app"
	"github.com/BarzMap/ParksApp/internal/config"
	"github.com/BarzMap/ParksApp/internal/database/client"
	"github.com/BarzMap/ParksApp/internal/database/storage"
	"github.com/BarzMap/ParksApp/internal/logger"
	"github.com/BarzMap/ParksApp/internal/rabbitmq"
	"github.com/BarzMap/ParksApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogCfg := logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}
	slogger := logger.NewSlog(slogCfg)
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (применяет миграции при старте)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	parkStorage := storage.NewParkStorage(dbClient.DB, slogger)
	equipmentStorage := storage.NewEquipmentStorage(dbClient.DB, slogger)
	imageStorage := storage.NewImageStorage(dbClient.DB, slogger)
	reviewStorage := storage.NewReviewStorage(dbClient.DB, slogger)
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)

	// 4. Инициализация клиентов внешних сервисов
	imagesClient := cloudflare.NewImagesAPIClient(cfg, slogger)
	archiveClient, err := minio.NewMinioClient(cfg, slogger) // S3 / MinIO архив оригиналов
	if err != nil {
		return nil, err
	}

	// 5. Инициализация RabbitMQ клиента (publisher и consumer в одном)
	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 6. Инициализация бизнес-логики (usecases)
	submissionUseCase := usecase.NewSubmissionUseCase(
		parkStorage,
		equipmentStorage,
		imageStorage,
		imagesClient,
		archiveClient,
		rabbitMQClient,
		slogger,
	)
	catalogUseCase := usecase.NewCatalogUseCase(
		parkStorage,
		equipmentStorage,
		imageStorage,
		reviewStorage,
		userStorage,
		slogger,
	)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		submissionUseCase,
		catalogUseCase,
		rabbitMQClient,
		rabbitMQClient.Close,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}
