package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEntry is one record in a customer's document cabinet (KYC papers,
// agreements, receipts). UploadedBy/UploadedOn are stamped on first save.
type DocumentEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	BookingID  *uuid.UUID `gorm:"type:uuid;index"`
	// DocumentType: e.g. "ID Proof", "Agreement", "Allotment Letter"
	DocumentType string `gorm:"type:varchar(50);not null"`
	FileName     string `gorm:"not null"`
	FilePath     string `gorm:"not null"`
	UploadedBy   string `gorm:"not null"`
	UploadedOn   time.Time
	CreatedAt    time.Time
}
