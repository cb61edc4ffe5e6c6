package service

import (
	"context"
	"errors"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
)

type PlotService interface {
	Create(ctx context.Context, req dto.SavePlotRequest, roles []string) (*dto.PlotResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SavePlotRequest, roles []string) (*dto.PlotResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PlotResponse, error)
	List(ctx context.Context, filter dto.PlotFilter) (*dto.PlotListResponse, error)
	// Lookup is the public availability check, keyed by project name + plot number.
	Lookup(ctx context.Context, projectID uuid.UUID, plotNumber string) (*dto.PlotLookupResponse, error)
}

type plotService struct {
	plots    repository.PlotRepository
	projects repository.ProjectRepository
}

func NewPlotService(plots repository.PlotRepository, projects repository.ProjectRepository) PlotService {
	return &plotService{plots: plots, projects: projects}
}

func (s *plotService) Create(ctx context.Context, req dto.SavePlotRequest, roles []string) (*dto.PlotResponse, error) {
	projectID := uuid.MustParse(req.ProjectID)
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, errors.New("project not found")
	}
	if _, err := s.plots.FindByProjectAndNumber(ctx, projectID, req.PlotNumber); err == nil {
		return nil, ruleErrorf("a plot with this number already exists in the project")
	}

	p := &model.Plot{Status: model.PlotAvailable}
	if err := applyPlotRequest(p, req, roles); err != nil {
		return nil, err
	}
	if err := s.plots.Create(ctx, p); err != nil {
		return nil, err
	}
	return plotToResponse(p), nil
}

func (s *plotService) Update(ctx context.Context, id uuid.UUID, req dto.SavePlotRequest, roles []string) (*dto.PlotResponse, error) {
	p, err := s.plots.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("plot not found")
	}
	if err := applyPlotRequest(p, req, roles); err != nil {
		return nil, err
	}
	if err := s.plots.Update(ctx, p); err != nil {
		return nil, err
	}
	return plotToResponse(p), nil
}

// applyPlotRequest copies the editable fields and derives TotalValue. A manual
// status override is an admin-only escape hatch; everyone else changes plot
// status through the booking workflow.
func applyPlotRequest(p *model.Plot, req dto.SavePlotRequest, roles []string) error {
	if req.Status != nil && *req.Status != p.Status {
		if !hasRole(roles, "admin") {
			return ErrPermissionDenied
		}
		p.Status = *req.Status
	}

	p.PlotNumber = req.PlotNumber
	p.ProjectID = uuid.MustParse(req.ProjectID)
	p.Sector = req.Sector
	p.PlotType = req.PlotType
	p.Facing = req.Facing
	p.PlotArea = req.PlotArea
	p.AreaUnit = req.AreaUnit
	p.RatePerUnit = req.RatePerUnit
	p.TotalValue = req.PlotArea.Mul(req.RatePerUnit).Round(2)
	return nil
}

func (s *plotService) Get(ctx context.Context, id uuid.UUID) (*dto.PlotResponse, error) {
	p, err := s.plots.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("plot not found")
	}
	return plotToResponse(p), nil
}

func (s *plotService) List(ctx context.Context, filter dto.PlotFilter) (*dto.PlotListResponse, error) {
	plots, total, err := s.plots.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PlotResponse, 0, len(plots))
	for i := range plots {
		data = append(data, *plotToResponse(&plots[i]))
	}
	return &dto.PlotListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *plotService) Lookup(ctx context.Context, projectID uuid.UUID, plotNumber string) (*dto.PlotLookupResponse, error) {
	p, err := s.plots.FindByProjectAndNumber(ctx, projectID, plotNumber)
	if err != nil {
		return nil, errors.New("plot not found")
	}
	projectName := ""
	if p.Project != nil {
		projectName = p.Project.Name
	}
	return &dto.PlotLookupResponse{
		PlotNumber: p.PlotNumber,
		Project:    projectName,
		Status:     p.Status,
		PlotArea:   p.PlotArea,
		AreaUnit:   p.AreaUnit,
		TotalValue: p.TotalValue,
	}, nil
}

func plotToResponse(p *model.Plot) *dto.PlotResponse {
	resp := &dto.PlotResponse{
		ID:          p.ID.String(),
		PlotNumber:  p.PlotNumber,
		ProjectID:   p.ProjectID.String(),
		Sector:      p.Sector,
		PlotType:    p.PlotType,
		Facing:      p.Facing,
		PlotArea:    p.PlotArea,
		AreaUnit:    p.AreaUnit,
		RatePerUnit: p.RatePerUnit,
		TotalValue:  p.TotalValue,
		Status:      p.Status,
	}
	if p.BookingID != nil {
		s := p.BookingID.String()
		resp.BookingID = &s
	}
	return resp
}
