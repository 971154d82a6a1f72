package domain

import (
	"time"

	"github.com/google/uuid"
)

// Статусы модерации парка. Новая заявка всегда создается в статусе pending,
// самостоятельно "одобрить" свой парк нельзя.
const (
	ParkStatusPending  = "pending"
	ParkStatusApproved = "approved"
	ParkStatusRejected = "rejected"
)

// Park представляет модель площадки для воркаута,
// соответствует таблице parks в бд
type Park struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	Latitude    float64    `json:"latitude" db:"latitude"`
	Longitude   float64    `json:"longitude" db:"longitude"`
	Address     *string    `json:"address,omitempty" db:"address"`
	Status      string     `json:"status" db:"status"`
	SubmittedBy *uuid.UUID `json:"submitted_by,omitempty" db:"submitted_by"`
	SubmitDate  time.Time  `json:"submit_date" db:"submit_date"`
	ApprovedBy  *uuid.UUID `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	AdminNotes  *string    `json:"admin_notes,omitempty" db:"admin_notes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ParkEquipment представляет связующую модель для отношения Many-to-Many между Park и Equipment,
// соответствует таблице park_equipment в бд.
// Уникальность пары (park_id, equipment_id) обеспечивается constraint'ом в бд.
type ParkEquipment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ParkID      uuid.UUID `json:"park_id" db:"park_id"`
	EquipmentID uuid.UUID `json:"equipment_id" db:"equipment_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
