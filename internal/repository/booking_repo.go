package repository

import (
	"context"
	"time"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	Update(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error)
	ListByRM(ctx context.Context, rmID uuid.UUID) ([]model.Booking, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error

	// Transactional operations — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Booking, error)
	SetStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	MarkSubmittedTx(tx *gorm.DB, id uuid.UUID, bookingNo int) error
	MarkCancelledTx(tx *gorm.DB, id uuid.UUID, remark string) error
	NextBookingNumber(ctx context.Context, tx *gorm.DB) (int, error)
	// ReplaceScheduleTx deletes any prior rows and inserts the new set in one
	// shot — schedule generation is all-or-nothing.
	ReplaceScheduleTx(tx *gorm.DB, bookingID uuid.UUID, rows []model.ScheduleRow) error
	CancelPendingRowsTx(tx *gorm.DB, bookingID uuid.UUID) error

	// Schedule rows.
	FindScheduleRow(ctx context.Context, rowID uuid.UUID) (*model.ScheduleRow, error)
	// FindScheduleRowForUpdate locks the row so concurrent payments against the
	// same installment serialize instead of racing past the overpayment check.
	FindScheduleRowForUpdate(tx *gorm.DB, rowID uuid.UUID) (*model.ScheduleRow, error)
	UpdateScheduleRowTx(tx *gorm.DB, row *model.ScheduleRow) error
	ListScheduleRows(ctx context.Context, bookingID uuid.UUID) ([]model.ScheduleRow, error)
	ListScheduleRowsTx(tx *gorm.DB, bookingID uuid.UUID) ([]model.ScheduleRow, error)

	// Overdue sweep.
	HasScheduleTable() bool
	ListOverdueCandidates(ctx context.Context, asOf time.Time) ([]model.ScheduleRow, error)
	MarkRowsOverdue(ctx context.Context, rowIDs []uuid.UUID) (int64, error)

	DB() *gorm.DB
}

type bookingRepo struct{ db *gorm.DB }

func NewBookingRepository(db *gorm.DB) BookingRepository { return &bookingRepo{db: db} }

func (r *bookingRepo) DB() *gorm.DB { return r.db }

func (r *bookingRepo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepo) Update(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("stage_order ASC") }).
		Preload("Plot").Preload("Customer").Preload("AssignedRM").
		First(&b, id).Error
	return &b, err
}

func (r *bookingRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error
	return &b, err
}

func (r *bookingRepo) List(ctx context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Booking{})

	if filter.ProjectID != "" {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.RMID != "" {
		q = q.Where("assigned_rm_id = ?", filter.RMID)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.FromDate != "" {
		q = q.Where("booking_date >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		q = q.Where("booking_date <= ?", filter.ToDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("stage_order ASC") }).
		Order("booking_date DESC, booking_no DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bookings).Error

	return bookings, total, err
}

func (r *bookingRepo) ListByRM(ctx context.Context, rmID uuid.UUID) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).Where("assigned_rm_id = ?", rmID).Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *bookingRepo) SetStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Booking{}).Where("id = ?", id).Update("status", status).Error
}

func (r *bookingRepo) MarkSubmittedTx(tx *gorm.DB, id uuid.UUID, bookingNo int) error {
	return tx.Model(&model.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.BookingBooked,
		"booking_no": bookingNo,
	}).Error
}

func (r *bookingRepo) MarkCancelledTx(tx *gorm.DB, id uuid.UUID, remark string) error {
	return tx.Model(&model.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  model.BookingCancelled,
		"remarks": remark,
	}).Error
}

func (r *bookingRepo) NextBookingNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic booking number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('bookings_booking_no_seq')").Scan(&num).Error
	return num, err
}

func (r *bookingRepo) ReplaceScheduleTx(tx *gorm.DB, bookingID uuid.UUID, rows []model.ScheduleRow) error {
	if err := tx.Where("booking_id = ?", bookingID).Delete(&model.ScheduleRow{}).Error; err != nil {
		return err
	}
	return tx.Create(&rows).Error
}

func (r *bookingRepo) CancelPendingRowsTx(tx *gorm.DB, bookingID uuid.UUID) error {
	return tx.Model(&model.ScheduleRow{}).
		Where("booking_id = ? AND status != ?", bookingID, model.RowPaid).
		Update("status", model.RowCancelled).Error
}

func (r *bookingRepo) FindScheduleRow(ctx context.Context, rowID uuid.UUID) (*model.ScheduleRow, error) {
	var row model.ScheduleRow
	err := r.db.WithContext(ctx).First(&row, rowID).Error
	return &row, err
}

func (r *bookingRepo) FindScheduleRowForUpdate(tx *gorm.DB, rowID uuid.UUID) (*model.ScheduleRow, error) {
	var row model.ScheduleRow
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, rowID).Error
	return &row, err
}

func (r *bookingRepo) UpdateScheduleRowTx(tx *gorm.DB, row *model.ScheduleRow) error {
	return tx.Save(row).Error
}

func (r *bookingRepo) ListScheduleRows(ctx context.Context, bookingID uuid.UUID) ([]model.ScheduleRow, error) {
	var rows []model.ScheduleRow
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("stage_order ASC").
		Find(&rows).Error
	return rows, err
}

func (r *bookingRepo) ListScheduleRowsTx(tx *gorm.DB, bookingID uuid.UUID) ([]model.ScheduleRow, error) {
	var rows []model.ScheduleRow
	err := tx.Where("booking_id = ?", bookingID).Order("stage_order ASC").Find(&rows).Error
	return rows, err
}

// HasScheduleTable guards the sweep against running before the schema exists
// (fresh deployments where the cron starts ahead of the first migration).
func (r *bookingRepo) HasScheduleTable() bool {
	return r.db.Migrator().HasTable(&model.ScheduleRow{})
}

func (r *bookingRepo) ListOverdueCandidates(ctx context.Context, asOf time.Time) ([]model.ScheduleRow, error) {
	var rows []model.ScheduleRow
	err := r.db.WithContext(ctx).
		Where("status IN ? AND due_date < ?",
			[]string{model.RowPending, model.RowPartial}, asOf.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (r *bookingRepo) MarkRowsOverdue(ctx context.Context, rowIDs []uuid.UUID) (int64, error) {
	if len(rowIDs) == 0 {
		return 0, nil
	}
	// Status filter repeated here so a row paid between select and update is
	// not clobbered.
	res := r.db.WithContext(ctx).Model(&model.ScheduleRow{}).
		Where("id IN ? AND status IN ?", rowIDs, []string{model.RowPending, model.RowPartial}).
		Update("status", model.RowOverdue)
	return res.RowsAffected, res.Error
}
