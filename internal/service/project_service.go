package service

import (
	"context"
	"errors"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
)

type ProjectService interface {
	Create(ctx context.Context, req dto.SaveProjectRequest) (*dto.ProjectResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SaveProjectRequest) (*dto.ProjectResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error)
	List(ctx context.Context) ([]dto.ProjectResponse, error)
}

type projectService struct {
	projects repository.ProjectRepository
}

func NewProjectService(projects repository.ProjectRepository) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, req dto.SaveProjectRequest) (*dto.ProjectResponse, error) {
	p := &model.Project{}
	if err := applyProjectRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return projectToResponse(p), nil
}

func (s *projectService) Update(ctx context.Context, id uuid.UUID, req dto.SaveProjectRequest) (*dto.ProjectResponse, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("project not found")
	}
	if err := applyProjectRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return projectToResponse(p), nil
}

func applyProjectRequest(p *model.Project, req dto.SaveProjectRequest) error {
	start, err := parseDatePtr(req.StartDate)
	if err != nil {
		return err
	}
	possession, err := parseDatePtr(req.ExpectedPossessionDate)
	if err != nil {
		return err
	}
	if start != nil && possession != nil && possession.Before(*start) {
		return ruleErrorf("expected possession date cannot precede the start date")
	}

	p.Name = req.Name
	p.Location = req.Location
	p.StartDate = start
	p.ExpectedPossessionDate = possession
	p.Description = req.Description
	return nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("project not found")
	}
	return projectToResponse(p), nil
}

func (s *projectService) List(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, *projectToResponse(&projects[i]))
	}
	return out, nil
}

func projectToResponse(p *model.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:                     p.ID.String(),
		Name:                   p.Name,
		Location:               p.Location,
		StartDate:              fmtDatePtr(p.StartDate),
		ExpectedPossessionDate: fmtDatePtr(p.ExpectedPossessionDate),
		Description:            p.Description,
	}
}
