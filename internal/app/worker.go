package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BarzMap/ParksApp/internal/core/ports"
	"github.com/BarzMap/ParksApp/internal/messaging/payloads"
)

// runWorker запускает потребителя очереди уведомлений модерации.
// Воркер получает уведомления о новых заявках и пишет их в журнал
// модерации; на его основе дежурные модераторы разбирают очередь.
func runWorker(
	logger *slog.Logger,
	submittedConsumer ports.ParkSubmittedConsumer,
) error {
	logger.Info("worker started, waiting for park submission notifications")

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	// Функция-обработчик для сообщений очереди
	messageHandler := func(ctx context.Context, payload payloads.ParkSubmittedPayload) error {
		logger.Info("park submission received for moderation",
			"park_id", payload.ParkID,
			"name", payload.Name,
			"status", payload.Status,
			"images_uploaded", payload.ImagesUploaded,
			"equipment_count", payload.EquipmentCount,
			"submitted_at", payload.SubmittedAt,
		)
		return nil
	}

	if err := submittedConsumer.StartConsumingParkSubmissions(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	// Graceful Shutdown для воркера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received, stopping worker")
	cancelWorker()

	time.Sleep(2 * time.Second) // Небольшая задержка, чтобы логи успели выйти
	logger.Info("worker stopped gracefully")
	return nil
}
