package repository

import (
	"context"

	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentEntryRepository persists the immutable receipts subledger and
// invoices. Entries have no Update/Delete — corrections are new entries.
type PaymentEntryRepository interface {
	CreateTx(tx *gorm.DB, pe *model.PaymentEntry) error
	NextReferenceNumber(ctx context.Context, tx *gorm.DB) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentEntry, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.PaymentEntry, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.PaymentEntry, error)

	CreateInvoice(ctx context.Context, inv *model.Invoice) error
	NextInvoiceNumber(ctx context.Context) (int, error)
	ListInvoicesByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Invoice, error)

	DB() *gorm.DB
}

type paymentEntryRepo struct{ db *gorm.DB }

func NewPaymentEntryRepository(db *gorm.DB) PaymentEntryRepository {
	return &paymentEntryRepo{db: db}
}

func (r *paymentEntryRepo) DB() *gorm.DB { return r.db }

func (r *paymentEntryRepo) CreateTx(tx *gorm.DB, pe *model.PaymentEntry) error {
	return tx.Create(pe).Error
}

func (r *paymentEntryRepo) NextReferenceNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('payment_entries_reference_no_seq')").Scan(&num).Error
	return num, err
}

func (r *paymentEntryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentEntry, error) {
	var pe model.PaymentEntry
	err := r.db.WithContext(ctx).Preload("Booking").Preload("Customer").First(&pe, id).Error
	return &pe, err
}

func (r *paymentEntryRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.PaymentEntry, error) {
	var entries []model.PaymentEntry
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("payment_date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *paymentEntryRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.PaymentEntry, error) {
	var entries []model.PaymentEntry
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("payment_date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *paymentEntryRepo) CreateInvoice(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *paymentEntryRepo) NextInvoiceNumber(ctx context.Context) (int, error) {
	var num int
	err := r.db.WithContext(ctx).Raw("SELECT nextval('invoices_invoice_no_seq')").Scan(&num).Error
	return num, err
}

func (r *paymentEntryRepo) ListInvoicesByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("posting_date ASC").
		Find(&invoices).Error
	return invoices, err
}
