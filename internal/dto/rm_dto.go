package dto

import "github.com/shopspring/decimal"

type SaveRMRequest struct {
	RMName string  `json:"rm_name" validate:"required"`
	// RMCode is auto-generated from initials when omitted.
	RMCode *string `json:"rm_code"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Phone  *string `json:"phone"`
}

type RMResponse struct {
	ID     string  `json:"id"`
	RMName string  `json:"rm_name"`
	RMCode string  `json:"rm_code"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active bool    `json:"active"`
}

// RMPerformanceResponse backs the RM dashboard section.
type RMPerformanceResponse struct {
	RMID           string            `json:"rm_id"`
	RMName         string            `json:"rm_name"`
	ClosedBookings int               `json:"closed_bookings"`
	TotalRevenue   decimal.Decimal   `json:"total_revenue"`
	ActiveBookings []BookingResponse `json:"active_bookings"`
}
