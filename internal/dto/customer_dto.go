package dto

import "github.com/shopspring/decimal"

type SaveCustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type CustomerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// CustomerSummaryResponse is the single-call 360° view of a customer: their
// bookings, receipts and documents plus portfolio totals. Draft and cancelled
// bookings appear in the list but are excluded from the booked-value and
// outstanding totals; TotalPaid covers every receipt on record.
type CustomerSummaryResponse struct {
	Customer  CustomerResponse       `json:"customer"`
	Bookings  []BookingResponse      `json:"bookings"`
	Payments  []PaymentEntryResponse `json:"payments"`
	Documents []DocumentResponse     `json:"documents"`

	TotalBookedValue decimal.Decimal `json:"total_booked_value"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}

type SaveDocumentRequest struct {
	CustomerID   string  `json:"customer_id"   validate:"required,uuid"`
	BookingID    *string `json:"booking_id"    validate:"omitempty,uuid"`
	DocumentType string  `json:"document_type" validate:"required"`
	FileName     string  `json:"file_name"     validate:"required"`
	FilePath     string  `json:"file_path"     validate:"required"`
}

type DocumentResponse struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customer_id"`
	BookingID    *string `json:"booking_id,omitempty"`
	DocumentType string  `json:"document_type"`
	FileName     string  `json:"file_name"`
	FilePath     string  `json:"file_path"`
	UploadedBy   string  `json:"uploaded_by"`
	UploadedOn   string  `json:"uploaded_on"`
}
