package domain

import (
	"time"

	"github.com/google/uuid"
)

// Image представляет модель фотографии площадки,
// соответствует таблице images в бд.
// Новая запись всегда создается с is_approved = false: фото попадает
// в публичную выдачу только после модерации.
type Image struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	ParkID          uuid.UUID  `json:"park_id" db:"park_id"`
	UploadedBy      *uuid.UUID `json:"uploaded_by,omitempty" db:"uploaded_by"`
	ImageURL        string     `json:"image_url" db:"image_url"`
	ThumbnailURL    *string    `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	AltText         *string    `json:"alt_text,omitempty" db:"alt_text"`
	IsApproved      bool       `json:"is_approved" db:"is_approved"`
	IsPrimary       bool       `json:"is_primary" db:"is_primary"`
	IsInappropriate bool       `json:"is_inappropriate" db:"is_inappropriate"`
	UploadDate      time.Time  `json:"upload_date" db:"upload_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}
