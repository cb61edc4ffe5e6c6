package repository

import (
	"context"

	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, p *model.Project) error
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) ProjectRepository { return &projectRepo{db: db} }

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).Order("name ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}
