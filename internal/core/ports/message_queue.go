package ports

import (
	"context"

	"github.com/BarzMap/ParksApp/internal/messaging/payloads"
)

// ParkSubmittedPublisher определяет методы для публикации уведомлений о новых заявках
// Этот интерфейс будет использоваться оркестратором заявок
type ParkSubmittedPublisher interface {
	PublishParkSubmitted(ctx context.Context, payload payloads.ParkSubmittedPayload) error
}

// ParkSubmittedConsumer определяет методы для потребления уведомлений о заявках
// будет использоваться воркером модерации для получения задач из очереди
type ParkSubmittedConsumer interface {
	// StartConsumingParkSubmissions начинает прослушивание очереди уведомлений
	// принимает функцию-обработчик, которая будет вызываться для каждого полученного сообщения
	StartConsumingParkSubmissions(ctx context.Context, handler func(context.Context, payloads.ParkSubmittedPayload) error) error
}
