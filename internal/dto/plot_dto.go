package dto

import "github.com/shopspring/decimal"

// PlotFilter is bound from the query string of GET /v1/plots.
type PlotFilter struct {
	ProjectID string `form:"project_id" validate:"omitempty,uuid"`
	Status    string `form:"status"`     // Available | Booked | Registered | On Hold | all
	Sector    string `form:"sector"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SavePlotRequest struct {
	PlotNumber string  `json:"plot_number" validate:"required"`
	ProjectID  string  `json:"project_id"  validate:"required,uuid"`
	Sector     *string `json:"sector"`
	PlotType   *string `json:"plot_type"`
	Facing     *string `json:"facing"`
	PlotArea    decimal.Decimal `json:"plot_area"     validate:"required,gt=0"`
	AreaUnit    string          `json:"area_unit"     validate:"required"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit" validate:"required,gt=0"`
	// Status may only be set manually by admins; others must leave it empty.
	Status *string `json:"status" validate:"omitempty,oneof=Available Booked Registered 'On Hold'"`
}

type PlotResponse struct {
	ID         string  `json:"id"`
	PlotNumber string  `json:"plot_number"`
	ProjectID  string  `json:"project_id"`
	Sector     *string `json:"sector,omitempty"`
	PlotType   *string `json:"plot_type,omitempty"`
	Facing     *string `json:"facing,omitempty"`
	PlotArea    decimal.Decimal `json:"plot_area"`
	AreaUnit    string          `json:"area_unit"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Status      string          `json:"status"`
	BookingID   *string         `json:"booking_id,omitempty"`
}

type PlotListResponse struct {
	Data  []PlotResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// PlotLookupResponse is the public, cacheable availability check payload.
type PlotLookupResponse struct {
	PlotNumber string          `json:"plot_number"`
	Project    string          `json:"project"`
	Status     string          `json:"status"`
	PlotArea   decimal.Decimal `json:"plot_area"`
	AreaUnit   string          `json:"area_unit"`
	TotalValue decimal.Decimal `json:"total_value"`
}
