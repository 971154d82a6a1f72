package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// Аутентификация происходит выше по стеку (Auth0), сюда приходит уже
// идентифицированный пользователь.
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Auth0ID     *string   `json:"auth0_id,omitempty" db:"auth0_id"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	DisplayName *string   `json:"display_name,omitempty" db:"display_name"`
	IsAdmin     bool      `json:"is_admin" db:"is_admin"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
