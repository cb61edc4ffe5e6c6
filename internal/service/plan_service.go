package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlanService interface {
	Create(ctx context.Context, req dto.SavePlanRequest) (*dto.PlanResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SavePlanRequest) (*dto.PlanResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.PlanResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type planService struct {
	repo repository.PlanRepository
}

func NewPlanService(repo repository.PlanRepository) PlanService {
	return &planService{repo: repo}
}

// validateStages sorts stages by order, recomputes the total percentage and
// enforces the two template invariants: total == 100 (±0.01) and at most one
// possession stage. Returns the recomputed total so the caller can persist it.
func validateStages(stages []model.PlanStage) (decimal.Decimal, error) {
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].StageOrder < stages[j].StageOrder
	})

	total := decimal.Zero
	possessionStages := 0
	for _, s := range stages {
		total = total.Add(s.Percentage)
		if s.IsPossessionStage {
			possessionStages++
		}
	}

	if total.Sub(hundred).Abs().GreaterThan(moneyTolerance) {
		return total, fmt.Errorf("%w (current total: %s%%)", ErrInvalidPlan, total.String())
	}
	if possessionStages > 1 {
		return total, fmt.Errorf("%w: only one stage can be marked as the possession stage", ErrInvalidPlan)
	}
	return total, nil
}

func stagesFromRequest(req dto.SavePlanRequest) []model.PlanStage {
	stages := make([]model.PlanStage, 0, len(req.Stages))
	for _, s := range req.Stages {
		stages = append(stages, model.PlanStage{
			StageOrder:        s.StageOrder,
			StageName:         s.StageName,
			Percentage:        s.Percentage,
			DueTrigger:        s.DueTrigger,
			DueDays:           s.DueDays,
			IsPossessionStage: s.IsPossessionStage,
		})
	}
	return stages
}

func (s *planService) Create(ctx context.Context, req dto.SavePlanRequest) (*dto.PlanResponse, error) {
	stages := stagesFromRequest(req)
	total, err := validateStages(stages)
	if err != nil {
		return nil, err
	}

	plan := &model.PaymentPlanTemplate{
		Name:            req.Name,
		Description:     req.Description,
		TotalPercentage: total,
		Active:          true,
		Stages:          stages,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return planToResponse(plan), nil
}

func (s *planService) Update(ctx context.Context, id uuid.UUID, req dto.SavePlanRequest) (*dto.PlanResponse, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("payment plan not found")
	}

	// A template referenced by a submitted booking is frozen — generated
	// schedules must stay reproducible from their plan.
	refs, err := s.repo.CountSubmittedBookings(ctx, id)
	if err != nil {
		return nil, err
	}
	if refs > 0 {
		return nil, fmt.Errorf("%w: plan is referenced by %d submitted booking(s) and cannot be modified", ErrInvalidPlan, refs)
	}

	stages := stagesFromRequest(req)
	total, err := validateStages(stages)
	if err != nil {
		return nil, err
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.TotalPercentage = total
	plan.Stages = stages
	for i := range plan.Stages {
		plan.Stages[i].TemplateID = plan.ID
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return planToResponse(plan), nil
}

func (s *planService) Get(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("payment plan not found")
	}
	return planToResponse(plan), nil
}

func (s *planService) List(ctx context.Context, includeInactive bool) ([]dto.PlanResponse, error) {
	plans, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, *planToResponse(&plans[i]))
	}
	return out, nil
}

func (s *planService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("payment plan not found")
	}
	return s.repo.Deactivate(ctx, id)
}

func planToResponse(p *model.PaymentPlanTemplate) *dto.PlanResponse {
	stages := make([]dto.PlanStageResponse, 0, len(p.Stages))
	for _, st := range p.Stages {
		stages = append(stages, dto.PlanStageResponse{
			ID:                st.ID.String(),
			StageOrder:        st.StageOrder,
			StageName:         st.StageName,
			Percentage:        st.Percentage,
			DueTrigger:        st.DueTrigger,
			DueDays:           st.DueDays,
			IsPossessionStage: st.IsPossessionStage,
		})
	}
	return &dto.PlanResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Description:     p.Description,
		TotalPercentage: p.TotalPercentage,
		Active:          p.Active,
		Stages:          stages,
	}
}
