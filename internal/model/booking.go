package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking lifecycle.
// Draft → (submit) → Booked → Payment In Progress → Possession Due → Completed
//                     ↓ (cancel)
//                  Cancelled
const (
	BookingDraft             = "Draft"
	BookingBooked            = "Booked"
	BookingPaymentInProgress = "Payment In Progress"
	BookingPossessionDue     = "Possession Due"
	BookingCompleted         = "Completed"
	BookingCancelled         = "Cancelled"
)

// Schedule row states. Rows are created once at schedule generation and only
// ever transition status — never deleted individually.
const (
	RowPending   = "Pending"
	RowPartial   = "Partial"
	RowPaid      = "Paid"
	RowOverdue   = "Overdue"
	RowCancelled = "Cancelled"
)

// Booking is the core sale transaction linking one customer to one plot under
// one payment plan. FinalValue = PlotValue − Discount, always ≥ 0.
// Status is derived from the schedule except at the submit/cancel transitions.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// BookingNo stays 0 until submission allocates a sequence value. Drafts all
	// share that 0, so uniqueness is enforced by a partial index (created in
	// infra.NewDatabase) rather than a uniqueIndex tag here.
	BookingNo    int       `gorm:"not null;default:0"`
	PlotID       uuid.UUID `gorm:"type:uuid;index;not null"`
	ProjectID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	AssignedRMID *uuid.UUID `gorm:"type:uuid;index"`
	BookingDate  time.Time  `gorm:"type:date;not null"`
	// PossessionDate is mandatory when the plan has possession-linked stages.
	PossessionDate *time.Time      `gorm:"type:date"`
	PlotValue      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Discount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	FinalValue     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaymentPlanID  uuid.UUID       `gorm:"type:uuid;not null"`
	Status         string          `gorm:"type:varchar(30);not null;default:'Draft'"`
	Remarks        *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Plot        *Plot                `gorm:"foreignKey:PlotID"`
	Project     *Project             `gorm:"foreignKey:ProjectID"`
	Customer    *Customer            `gorm:"foreignKey:CustomerID"`
	AssignedRM  *RelationshipManager `gorm:"foreignKey:AssignedRMID"`
	PaymentPlan *PaymentPlanTemplate `gorm:"foreignKey:PaymentPlanID"`
	Schedule    []ScheduleRow        `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
}

// Submitted reports whether the booking has passed its irrevocable submission.
func (b *Booking) Submitted() bool {
	return b.Status != BookingDraft && b.Status != BookingCancelled
}

// ScheduleRow is one staged installment due under a booking's payment plan.
// Invariants: Balance = AmountDue − AmountReceived, never negative;
// AmountReceived is monotonically non-decreasing.
type ScheduleRow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingID  uuid.UUID `gorm:"type:uuid;index;not null"`
	StageName  string    `gorm:"not null"`
	StageOrder int       `gorm:"not null"`
	Percentage decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	AmountDue  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	DueDate    time.Time       `gorm:"type:date;not null;index"`
	AmountReceived decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Balance        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'Pending';index"`
	IsPossessionStage bool         `gorm:"not null;default:false"`
	// PaymentEntryID references the most recent subledger entry applied to this row.
	PaymentEntryID *uuid.UUID `gorm:"type:uuid"`
	ReceiptDate    *time.Time `gorm:"type:date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides GORM's pluralization (schedule_rows → booking_schedule_rows).
func (ScheduleRow) TableName() string { return "booking_schedule_rows" }
