package repository

import (
	"context"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlotRepository interface {
	Create(ctx context.Context, p *model.Plot) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Plot, error)
	FindByProjectAndNumber(ctx context.Context, projectID uuid.UUID, plotNumber string) (*model.Plot, error)
	List(ctx context.Context, filter dto.PlotFilter) ([]model.Plot, int64, error)
	Update(ctx context.Context, p *model.Plot) error

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdate takes a row lock so the availability check and the
	// subsequent status write are serialized across concurrent submissions.
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Plot, error)
	SetStatusTx(tx *gorm.DB, id uuid.UUID, status string, bookingID *uuid.UUID) error

	DB() *gorm.DB
}

type plotRepo struct{ db *gorm.DB }

func NewPlotRepository(db *gorm.DB) PlotRepository { return &plotRepo{db: db} }

func (r *plotRepo) DB() *gorm.DB { return r.db }

func (r *plotRepo) Create(ctx context.Context, p *model.Plot) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *plotRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Plot, error) {
	var p model.Plot
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *plotRepo) FindByProjectAndNumber(ctx context.Context, projectID uuid.UUID, plotNumber string) (*model.Plot, error) {
	var p model.Plot
	err := r.db.WithContext(ctx).Preload("Project").
		Where("project_id = ? AND plot_number = ?", projectID, plotNumber).
		First(&p).Error
	return &p, err
}

func (r *plotRepo) List(ctx context.Context, filter dto.PlotFilter) ([]model.Plot, int64, error) {
	var plots []model.Plot
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Plot{})

	if filter.ProjectID != "" {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Sector != "" {
		q = q.Where("sector = ?", filter.Sector)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("plot_number ASC").Limit(filter.Limit).Offset(offset).Find(&plots).Error
	return plots, total, err
}

func (r *plotRepo) Update(ctx context.Context, p *model.Plot) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *plotRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Plot, error) {
	var p model.Plot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *plotRepo) SetStatusTx(tx *gorm.DB, id uuid.UUID, status string, bookingID *uuid.UUID) error {
	return tx.Model(&model.Plot{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"booking_id": bookingID,
	}).Error
}
