package repository

import (
	"context"

	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RMRepository interface {
	Create(ctx context.Context, rm *model.RelationshipManager) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RelationshipManager, error)
	List(ctx context.Context, includeInactive bool) ([]model.RelationshipManager, error)
	Update(ctx context.Context, rm *model.RelationshipManager) error
	// CodeExists checks rm_code uniqueness, excluding the RM being saved so
	// re-saves don't collide with themselves.
	CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
}

type rmRepo struct{ db *gorm.DB }

func NewRMRepository(db *gorm.DB) RMRepository { return &rmRepo{db: db} }

func (r *rmRepo) Create(ctx context.Context, rm *model.RelationshipManager) error {
	return r.db.WithContext(ctx).Create(rm).Error
}

func (r *rmRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RelationshipManager, error) {
	var rm model.RelationshipManager
	err := r.db.WithContext(ctx).First(&rm, id).Error
	return &rm, err
}

func (r *rmRepo) List(ctx context.Context, includeInactive bool) ([]model.RelationshipManager, error) {
	var rms []model.RelationshipManager
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("rm_name ASC").Find(&rms).Error
	return rms, err
}

func (r *rmRepo) Update(ctx context.Context, rm *model.RelationshipManager) error {
	return r.db.WithContext(ctx).Save(rm).Error
}

func (r *rmRepo) CodeExists(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RelationshipManager{}).
		Where("rm_code = ? AND id != ?", code, excludeID).
		Count(&n).Error
	return n > 0, err
}
