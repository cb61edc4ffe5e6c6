package dto

import "github.com/shopspring/decimal"

// ReportFilter is shared by the register/collection/overdue reports.
type ReportFilter struct {
	ProjectID  string `form:"project_id"  validate:"omitempty,uuid"`
	RMID       string `form:"rm_id"       validate:"omitempty,uuid"`
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Status     string `form:"status"`
	FromDate   string `form:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate     string `form:"to_date"   validate:"omitempty,datetime=2006-01-02"`
	// Format: json (default) | xlsx
	Format string `form:"format,default=json" validate:"omitempty,oneof=json xlsx"`
}

type BookingRegisterRow struct {
	BookingNo    int             `json:"booking_no"`
	BookingDate  string          `json:"booking_date"`
	Customer     string          `json:"customer"`
	PlotNumber   string          `json:"plot_number"`
	Project      string          `json:"project"`
	PlanName     string          `json:"plan_name"`
	PlotValue    decimal.Decimal `json:"plot_value"`
	Discount     decimal.Decimal `json:"discount"`
	FinalValue   decimal.Decimal `json:"final_value"`
	RMName       *string         `json:"rm_name,omitempty"`
	Status       string          `json:"status"`
}

type PlotInventoryRow struct {
	PlotNumber  string          `json:"plot_number"`
	Project     string          `json:"project"`
	Sector      *string         `json:"sector,omitempty"`
	PlotType    *string         `json:"plot_type,omitempty"`
	Facing      *string         `json:"facing,omitempty"`
	PlotArea    decimal.Decimal `json:"plot_area"`
	AreaUnit    string          `json:"area_unit"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Status      string          `json:"status"`
	BookingNo   *int            `json:"booking_no,omitempty"`
	Customer    *string         `json:"customer,omitempty"`
	RMName      *string         `json:"rm_name,omitempty"`
	BookingDate *string         `json:"booking_date,omitempty"`
}

type OverduePaymentRow struct {
	BookingNo   int             `json:"booking_no"`
	Customer    string          `json:"customer"`
	PlotNumber  string          `json:"plot_number"`
	Project     string          `json:"project"`
	StageName   string          `json:"stage_name"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Balance        decimal.Decimal `json:"balance"`
	DueDate        string          `json:"due_date"`
	DaysOverdue    int             `json:"days_overdue"`
	RMName         *string         `json:"rm_name,omitempty"`
}

type PaymentCollectionRow struct {
	ReferenceNo string          `json:"reference_no"`
	PaymentDate string          `json:"payment_date"`
	Customer    string          `json:"customer"`
	BookingNo   int             `json:"booking_no"`
	Project     string          `json:"project"`
	StageName   string          `json:"stage_name"`
	PaymentMode string          `json:"payment_mode"`
	Amount      decimal.Decimal `json:"amount"`
}

type RMPerformanceRow struct {
	RMName         string          `json:"rm_name"`
	RMCode         string          `json:"rm_code"`
	TotalBookings  int             `json:"total_bookings"`
	ClosedBookings int             `json:"closed_bookings"`
	CancelledBookings int          `json:"cancelled_bookings"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCollected decimal.Decimal `json:"total_collected"`
}

type CustomerLedgerRow struct {
	Date        string          `json:"date"`
	EntryType   string          `json:"entry_type"` // Booking | Payment
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
