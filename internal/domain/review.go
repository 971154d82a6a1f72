package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review представляет отзыв пользователя о площадке,
// соответствует таблице reviews в бд.
// На пару (park_id, user_id) допускается только один отзыв.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ParkID    uuid.UUID `json:"park_id" db:"park_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
