package repository

import (
	"context"

	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *model.DocumentEntry) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.DocumentEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepo struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) DocumentRepository { return &documentRepo{db: db} }

func (r *documentRepo) Create(ctx context.Context, d *model.DocumentEntry) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.DocumentEntry, error) {
	var docs []model.DocumentEntry
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("uploaded_on DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DocumentEntry{}, id).Error
}
