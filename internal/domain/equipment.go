package domain

import (
	"time"

	"github.com/google/uuid"
)

// Equipment представляет модель снаряда (турник, брусья и т.д.),
// соответствует таблице equipment в бд
type Equipment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	IconName    *string   `json:"icon_name,omitempty" db:"icon_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
