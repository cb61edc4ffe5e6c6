package model

import (
	"time"

	"github.com/google/uuid"
)

// Project groups plots under one development scheme.
type Project struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"uniqueIndex;not null"`
	Location *string
	// ExpectedPossessionDate must not precede StartDate.
	StartDate              *time.Time `gorm:"type:date"`
	ExpectedPossessionDate *time.Time `gorm:"type:date"`
	Description            *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
