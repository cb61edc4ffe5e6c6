package repository

import (
	"context"

	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanRepository defines the data access contract for payment plan templates.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type PlanRepository interface {
	Create(ctx context.Context, t *model.PaymentPlanTemplate) error
	Update(ctx context.Context, t *model.PaymentPlanTemplate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentPlanTemplate, error)
	List(ctx context.Context, includeInactive bool) ([]model.PaymentPlanTemplate, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// CountSubmittedBookings returns the number of non-draft, non-cancelled
	// bookings referencing this template — used to enforce immutability.
	CountSubmittedBookings(ctx context.Context, templateID uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type planRepo struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) PlanRepository { return &planRepo{db: db} }

func (r *planRepo) DB() *gorm.DB { return r.db }

func (r *planRepo) Create(ctx context.Context, t *model.PaymentPlanTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update replaces the template and its full stage set. Stages are re-created
// rather than diffed — the template is only mutable while unreferenced.
func (r *planRepo) Update(ctx context.Context, t *model.PaymentPlanTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", t.ID).Delete(&model.PlanStage{}).Error; err != nil {
			return err
		}
		return tx.Save(t).Error
	})
}

func (r *planRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentPlanTemplate, error) {
	var t model.PaymentPlanTemplate
	err := r.db.WithContext(ctx).Preload("Stages", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC")
	}).First(&t, id).Error
	return &t, err
}

func (r *planRepo) List(ctx context.Context, includeInactive bool) ([]model.PaymentPlanTemplate, error) {
	var plans []model.PaymentPlanTemplate
	q := r.db.WithContext(ctx).Preload("Stages", func(db *gorm.DB) *gorm.DB {
		return db.Order("stage_order ASC")
	})
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("name ASC").Find(&plans).Error
	return plans, err
}

func (r *planRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PaymentPlanTemplate{}).
		Where("id = ?", id).Update("active", false).Error
}

func (r *planRepo) CountSubmittedBookings(ctx context.Context, templateID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("payment_plan_id = ? AND status NOT IN ?", templateID,
			[]string{model.BookingDraft, model.BookingCancelled}).
		Count(&n).Error
	return n, err
}
