package app

import (
	"fmt"
	"log/slog"

	"github.com/BarzMap/ParksApp/internal/config"
	"github.com/BarzMap/ParksApp/internal/core/ports"
	"github.com/BarzMap/ParksApp/internal/database/client"
	"github.com/BarzMap/ParksApp/internal/usecase"
)

// App агрегирует зависимости приложения и управляет их жизненным циклом.
type App struct {
	Config *config.Config

	logger            *slog.Logger
	dbClient          *client.Client
	submissionUseCase usecase.SubmissionUseCase
	catalogUseCase    usecase.CatalogUseCase
	submittedConsumer ports.ParkSubmittedConsumer
	queueCloser       func()
}

// NewApp собирает объект приложения из готовых зависимостей.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	submissionUseCase usecase.SubmissionUseCase,
	catalogUseCase usecase.CatalogUseCase,
	submittedConsumer ports.ParkSubmittedConsumer,
	queueCloser func(),
) *App {
	return &App{
		Config:            cfg,
		logger:            logger,
		dbClient:          dbClient,
		submissionUseCase: submissionUseCase,
		catalogUseCase:    catalogUseCase,
		submittedConsumer: submittedConsumer,
		queueCloser:       queueCloser,
	}
}

// Logger возвращает основной логгер приложения.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме: "server" или "worker".
func (a *App) Run(mode string) error {
	a.logger.Info("starting application", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = runServer(a.Config, a.logger, a.submissionUseCase, a.catalogUseCase)
	case "worker":
		err = runWorker(a.logger, a.submittedConsumer)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	if err != nil {
		return err
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("error during shutdown", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.queueCloser != nil {
		a.queueCloser()
	}
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}
	return nil
}
