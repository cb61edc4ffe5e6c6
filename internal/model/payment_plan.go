package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Due triggers supported by a plan stage. Possession-linked triggers require
// the booking's possession date to be set before submission.
const (
	TriggerOnBooking          = "On Booking"
	TriggerDaysFromBooking    = "Days from Booking"
	TriggerOnPossession       = "On Possession"
	TriggerDaysFromPossession = "Days from Possession"
)

// PaymentPlanTemplate defines the staged payment structure applied to bookings.
// TotalPercentage is recomputed on every save and must equal 100 (±0.01).
// A template referenced by a submitted booking is immutable.
type PaymentPlanTemplate struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string    `gorm:"uniqueIndex;not null"`
	Description     *string
	TotalPercentage decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	Active          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Stages []PlanStage `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// PlanStage is one named stage of a payment plan.
// DueTrigger: "On Booking" | "Days from Booking" | "On Possession" | "Days from Possession"
type PlanStage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TemplateID uuid.UUID `gorm:"type:uuid;index;not null"`
	StageOrder int       `gorm:"not null"`
	StageName  string    `gorm:"not null"`
	Percentage decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	DueTrigger string          `gorm:"type:varchar(30);not null"`
	// DueDays offsets the trigger date for "Days from …" triggers; ignored otherwise.
	DueDays           int  `gorm:"not null;default:0"`
	IsPossessionStage bool `gorm:"not null;default:false"`
}

// NeedsPossessionDate reports whether this stage's due date depends on the
// booking's possession date.
func (s *PlanStage) NeedsPossessionDate() bool {
	return s.DueTrigger == TriggerOnPossession || s.DueTrigger == TriggerDaysFromPossession
}
