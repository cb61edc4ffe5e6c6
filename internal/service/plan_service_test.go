package service

import (
	"context"
	"testing"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStages(t *testing.T) {
	tests := []struct {
		name    string
		stages  []model.PlanStage
		wantErr bool
	}{
		{
			name: "exact 100",
			stages: []model.PlanStage{
				{StageOrder: 1, Percentage: dec("20")},
				{StageOrder: 2, Percentage: dec("30")},
				{StageOrder: 3, Percentage: dec("50")},
			},
		},
		{
			name: "within tolerance",
			stages: []model.PlanStage{
				{StageOrder: 1, Percentage: dec("33.33")},
				{StageOrder: 2, Percentage: dec("33.33")},
				{StageOrder: 3, Percentage: dec("33.33")},
			},
		},
		{
			name: "short of 100",
			stages: []model.PlanStage{
				{StageOrder: 1, Percentage: dec("20")},
				{StageOrder: 2, Percentage: dec("30")},
			},
			wantErr: true,
		},
		{
			name: "over 100",
			stages: []model.PlanStage{
				{StageOrder: 1, Percentage: dec("60")},
				{StageOrder: 2, Percentage: dec("50")},
			},
			wantErr: true,
		},
		{
			name: "just outside tolerance",
			stages: []model.PlanStage{
				{StageOrder: 1, Percentage: dec("50")},
				{StageOrder: 2, Percentage: dec("49.98")},
			},
			wantErr: true,
		},
		{
			name: "two possession stages",
			stages: []model.PlanStage{
				{StageOrder: 1, Percentage: dec("50"), IsPossessionStage: true},
				{StageOrder: 2, Percentage: dec("50"), IsPossessionStage: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateStages(tt.stages)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPlan)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStagesSortsByOrder(t *testing.T) {
	stages := []model.PlanStage{
		{StageOrder: 3, StageName: "Final", Percentage: dec("50")},
		{StageOrder: 1, StageName: "Booking", Percentage: dec("20")},
		{StageOrder: 2, StageName: "Middle", Percentage: dec("30")},
	}

	total, err := validateStages(stages)
	require.NoError(t, err)
	assert.True(t, total.Equal(hundred))
	assert.Equal(t, "Booking", stages[0].StageName)
	assert.Equal(t, "Middle", stages[1].StageName)
	assert.Equal(t, "Final", stages[2].StageName)
}

func TestPlanCreate(t *testing.T) {
	repo := newStubPlanRepo()
	svc := NewPlanService(repo)

	resp, err := svc.Create(context.Background(), dto.SavePlanRequest{
		Name: "Down Payment Plan",
		Stages: []dto.PlanStageRequest{
			{StageOrder: 1, StageName: "Booking", Percentage: dec("10"), DueTrigger: model.TriggerOnBooking},
			{StageOrder: 2, StageName: "Balance", Percentage: dec("90"), DueTrigger: model.TriggerDaysFromBooking, DueDays: 60},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.True(t, resp.TotalPercentage.Equal(hundred))
	assert.Len(t, resp.Stages, 2)
}

func TestPlanCreateRejectsBadTotal(t *testing.T) {
	svc := NewPlanService(newStubPlanRepo())

	_, err := svc.Create(context.Background(), dto.SavePlanRequest{
		Name: "Broken",
		Stages: []dto.PlanStageRequest{
			{StageOrder: 1, StageName: "Booking", Percentage: dec("10"), DueTrigger: model.TriggerOnBooking},
		},
	})
	require.ErrorIs(t, err, ErrInvalidPlan)
}

func TestPlanUpdateFrozenWhenReferenced(t *testing.T) {
	repo := newStubPlanRepo()
	plan := standardPlan()
	require.NoError(t, repo.Create(context.Background(), plan))
	repo.submittedRefs[plan.ID] = 2

	svc := NewPlanService(repo)
	_, err := svc.Update(context.Background(), plan.ID, dto.SavePlanRequest{
		Name: "Renamed",
		Stages: []dto.PlanStageRequest{
			{StageOrder: 1, StageName: "All Upfront", Percentage: dec("100"), DueTrigger: model.TriggerOnBooking},
		},
	})
	require.ErrorIs(t, err, ErrInvalidPlan)
	assert.Contains(t, err.Error(), "2 submitted booking")
}

func TestPlanUpdateWhileUnreferenced(t *testing.T) {
	repo := newStubPlanRepo()
	plan := standardPlan()
	require.NoError(t, repo.Create(context.Background(), plan))

	svc := NewPlanService(repo)
	resp, err := svc.Update(context.Background(), plan.ID, dto.SavePlanRequest{
		Name: "Revised",
		Stages: []dto.PlanStageRequest{
			{StageOrder: 1, StageName: "Booking", Percentage: dec("40"), DueTrigger: model.TriggerOnBooking},
			{StageOrder: 2, StageName: "Possession", Percentage: dec("60"), DueTrigger: model.TriggerOnPossession, IsPossessionStage: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Revised", resp.Name)
	assert.Len(t, resp.Stages, 2)
}

func TestPlanDeactivate(t *testing.T) {
	repo := newStubPlanRepo()
	plan := standardPlan()
	require.NoError(t, repo.Create(context.Background(), plan))

	svc := NewPlanService(repo)
	require.NoError(t, svc.Deactivate(context.Background(), plan.ID))
	assert.False(t, repo.plans[plan.ID].Active)

	err := svc.Deactivate(context.Background(), uuid.New())
	assert.Error(t, err)
}
