package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentEntry is an immutable subledger record of funds received against one
// schedule row. ReferenceNo ("PE-00042") is the durable reference returned to
// callers. Entries are never modified or deleted.
type PaymentEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReferenceNo   string    `gorm:"uniqueIndex;not null"`
	BookingID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ScheduleRowID uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentDate   time.Time       `gorm:"type:date;not null"`
	// PaymentMode: "Cash" | "Cheque" | "Bank Transfer" | "UPI"
	PaymentMode     string `gorm:"type:varchar(30);not null"`
	ReferenceDetail *string
	Remarks         *string
	CreatedAt       time.Time

	Booking  *Booking  `gorm:"foreignKey:BookingID"`
	Customer *Customer `gorm:"foreignKey:CustomerID"`
}

// Invoice is a simple sales invoice raised for a submitted booking's final
// value. Accounts/admin only.
type Invoice struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNo   int       `gorm:"uniqueIndex;not null"`
	BookingID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PostingDate time.Time       `gorm:"type:date;not null"`
	Remarks     *string
	CreatedAt   time.Time
}
