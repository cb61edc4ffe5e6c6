package dto

import "github.com/shopspring/decimal"

type PlanStageRequest struct {
	StageOrder int             `json:"stage_order" validate:"required,min=1"`
	StageName  string          `json:"stage_name"  validate:"required"`
	Percentage decimal.Decimal `json:"percentage"  validate:"required,gt=0"`
	DueTrigger string          `json:"due_trigger" validate:"required,oneof='On Booking' 'Days from Booking' 'On Possession' 'Days from Possession'"`
	DueDays    int             `json:"due_days"    validate:"min=0"`
	IsPossessionStage bool     `json:"is_possession_stage"`
}

type SavePlanRequest struct {
	Name        string             `json:"name" validate:"required"`
	Description *string            `json:"description"`
	Stages      []PlanStageRequest `json:"stages" validate:"required,min=1,dive"`
}

type PlanStageResponse struct {
	ID         string          `json:"id"`
	StageOrder int             `json:"stage_order"`
	StageName  string          `json:"stage_name"`
	Percentage decimal.Decimal `json:"percentage"`
	DueTrigger string          `json:"due_trigger"`
	DueDays    int             `json:"due_days"`
	IsPossessionStage bool     `json:"is_possession_stage"`
}

type PlanResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Description     *string             `json:"description,omitempty"`
	TotalPercentage decimal.Decimal     `json:"total_percentage"`
	Active          bool                `json:"active"`
	Stages          []PlanStageResponse `json:"stages"`
}
