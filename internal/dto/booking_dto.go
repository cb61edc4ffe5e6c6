package dto

import "github.com/shopspring/decimal"

// BookingFilter is bound from the query string of GET /v1/bookings.
type BookingFilter struct {
	ProjectID  string `form:"project_id"  validate:"omitempty,uuid"`
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	RMID       string `form:"rm_id"       validate:"omitempty,uuid"`
	Status     string `form:"status"` // lifecycle status | all
	FromDate   string `form:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate     string `form:"to_date"   validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaveBookingRequest struct {
	PlotID       string  `json:"plot_id"       validate:"required,uuid"`
	CustomerID   string  `json:"customer_id"   validate:"required,uuid"`
	AssignedRMID *string `json:"assigned_rm_id" validate:"omitempty,uuid"`
	BookingDate  string  `json:"booking_date"  validate:"required,datetime=2006-01-02"`
	PossessionDate *string         `json:"possession_date" validate:"omitempty,datetime=2006-01-02"`
	PlotValue      decimal.Decimal `json:"plot_value"      validate:"required,gt=0"`
	Discount       decimal.Decimal `json:"discount"        validate:"min=0"`
	PaymentPlanID  string          `json:"payment_plan_id" validate:"required,uuid"`
	Remarks        *string         `json:"remarks"`
}

type ScheduleRowResponse struct {
	ID         string          `json:"id"`
	StageName  string          `json:"stage_name"`
	StageOrder int             `json:"stage_order"`
	Percentage decimal.Decimal `json:"percentage"`
	AmountDue  decimal.Decimal `json:"amount_due"`
	DueDate    string          `json:"due_date"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Balance        decimal.Decimal `json:"balance"`
	Status         string          `json:"status"`
	IsPossessionStage bool         `json:"is_possession_stage"`
	PaymentRef        *string      `json:"payment_ref,omitempty"`
	ReceiptDate       *string      `json:"receipt_date,omitempty"`
}

type BookingResponse struct {
	ID             string          `json:"id"`
	BookingNo      int             `json:"booking_no"`
	PlotID         string          `json:"plot_id"`
	ProjectID      string          `json:"project_id"`
	CustomerID     string          `json:"customer_id"`
	AssignedRMID   *string         `json:"assigned_rm_id,omitempty"`
	BookingDate    string          `json:"booking_date"`
	PossessionDate *string         `json:"possession_date,omitempty"`
	PlotValue      decimal.Decimal `json:"plot_value"`
	Discount       decimal.Decimal `json:"discount"`
	FinalValue     decimal.Decimal `json:"final_value"`
	PaymentPlanID  string          `json:"payment_plan_id"`
	Status         string          `json:"status"`
	Remarks        *string         `json:"remarks,omitempty"`
	Schedule       []ScheduleRowResponse `json:"schedule,omitempty"`
}

type BookingListResponse struct {
	Data  []BookingResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// ReceivePaymentRequest records funds against one schedule row.
type ReceivePaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"       validate:"required"`
	PaymentDate string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
	PaymentMode string          `json:"payment_mode" validate:"required,oneof=Cash Cheque 'Bank Transfer' UPI"`
	Reference   *string         `json:"reference"`
	Remarks     *string         `json:"remarks"`
}

type PaymentEntryResponse struct {
	ID          string          `json:"id"`
	ReferenceNo string          `json:"reference_no"`
	BookingID   string          `json:"booking_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	PaymentMode string          `json:"payment_mode"`
	Reference   *string         `json:"reference,omitempty"`
}

type InvoiceResponse struct {
	ID          string          `json:"id"`
	InvoiceNo   int             `json:"invoice_no"`
	BookingID   string          `json:"booking_id"`
	CustomerID  string          `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	PostingDate string          `json:"posting_date"`
}
