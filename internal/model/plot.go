package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plot inventory states. At most one non-cancelled booking may hold a plot in
// Booked/Registered state — the core cross-entity invariant.
const (
	PlotAvailable  = "Available"
	PlotBooked     = "Booked"
	PlotRegistered = "Registered"
	PlotOnHold     = "On Hold"
)

// Plot is one sellable unit of a project's inventory.
// Status changes flow through the booking workflow; manual overrides are
// restricted to admins (see PlotService).
type Plot struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlotNumber string    `gorm:"not null;index:idx_project_plot,unique"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index:idx_project_plot,unique"`
	Sector     *string
	PlotType   *string // e.g. "Residential", "Commercial", "Corner"
	Facing     *string
	PlotArea    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AreaUnit    string          `gorm:"not null;default:'sqyd'"`
	RatePerUnit decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TotalValue is derived: PlotArea × RatePerUnit.
	TotalValue decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'Available';index"`
	BookingID  *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}
