package payloads

import (
	"time"

	"github.com/google/uuid"
)

// ParkSubmittedPayload представляет уведомление о новой заявке на площадку,
// публикуемое в очередь модерации через RabbitMQ.
type ParkSubmittedPayload struct {
	ParkID         uuid.UUID  `json:"park_id"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	SubmittedBy    *uuid.UUID `json:"submitted_by,omitempty"`
	ImagesUploaded int        `json:"images_uploaded"`
	EquipmentCount int        `json:"equipment_count"`
	SubmittedAt    time.Time  `json:"submitted_at"`
}
