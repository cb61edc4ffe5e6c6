package dto

type SaveProjectRequest struct {
	Name     string  `json:"name" validate:"required"`
	Location *string `json:"location"`
	// Dates as YYYY-MM-DD
	StartDate              *string `json:"start_date"               validate:"omitempty,datetime=2006-01-02"`
	ExpectedPossessionDate *string `json:"expected_possession_date" validate:"omitempty,datetime=2006-01-02"`
	Description            *string `json:"description"`
}

type ProjectResponse struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	Location               *string `json:"location,omitempty"`
	StartDate              *string `json:"start_date,omitempty"`
	ExpectedPossessionDate *string `json:"expected_possession_date,omitempty"`
	Description            *string `json:"description,omitempty"`
}
