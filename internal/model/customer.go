package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the buying party on bookings and payment entries.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Email     *string
	Phone     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
