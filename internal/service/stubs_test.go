package service

// In-memory repository stubs shared by the service tests. Stubs ignore the
// tx argument of *Tx methods and return nil from DB(), which makes runTx
// execute the closure directly without a database.

import (
	"context"
	"errors"
	"time"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── BookingRepository stub ───────────────────────────────────────────────────

type stubBookingRepo struct {
	bookings map[uuid.UUID]*model.Booking
	rows     map[uuid.UUID]*model.ScheduleRow
	nextNo   int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{
		bookings: make(map[uuid.UUID]*model.Booking),
		rows:     make(map[uuid.UUID]*model.ScheduleRow),
		nextNo:   1000,
	}
}

func (r *stubBookingRepo) DB() *gorm.DB { return nil }

func (r *stubBookingRepo) Create(_ context.Context, b *model.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if err := r.checkBookingNo(b); err != nil {
		return err
	}
	b.CreatedAt = time.Now()
	r.bookings[b.ID] = b
	return nil
}

// checkBookingNo mirrors the partial unique index on bookings.booking_no:
// submitted numbers must be unique, the 0 draft placeholder is exempt.
func (r *stubBookingRepo) checkBookingNo(b *model.Booking) error {
	if b.BookingNo == 0 {
		return nil
	}
	for _, other := range r.bookings {
		if other.ID != b.ID && other.BookingNo == b.BookingNo {
			return errors.New(`duplicate key value violates unique constraint "idx_bookings_booking_no"`)
		}
	}
	return nil
}

func (r *stubBookingRepo) Update(_ context.Context, b *model.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return b, nil
}

func (r *stubBookingRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Booking, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubBookingRepo) List(_ context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error) {
	var out []model.Booking
	for _, b := range r.bookings {
		if filter.CustomerID != "" && b.CustomerID.String() != filter.CustomerID {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *stubBookingRepo) ListByRM(_ context.Context, rmID uuid.UUID) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range r.bookings {
		if b.AssignedRMID != nil && *b.AssignedRMID == rmID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("record not found")
	}
	b.Status = status
	return nil
}

func (r *stubBookingRepo) SetStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	return r.SetStatus(context.Background(), id, status)
}

func (r *stubBookingRepo) MarkSubmittedTx(_ *gorm.DB, id uuid.UUID, bookingNo int) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("record not found")
	}
	updated := *b
	updated.BookingNo = bookingNo
	if err := r.checkBookingNo(&updated); err != nil {
		return err
	}
	b.Status = model.BookingBooked
	b.BookingNo = bookingNo
	return nil
}

func (r *stubBookingRepo) MarkCancelledTx(_ *gorm.DB, id uuid.UUID, remark string) error {
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("record not found")
	}
	b.Status = model.BookingCancelled
	b.Remarks = &remark
	return nil
}

func (r *stubBookingRepo) NextBookingNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.nextNo++
	return r.nextNo, nil
}

func (r *stubBookingRepo) ReplaceScheduleTx(_ *gorm.DB, bookingID uuid.UUID, rows []model.ScheduleRow) error {
	for id, row := range r.rows {
		if row.BookingID == bookingID {
			delete(r.rows, id)
		}
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		cloned := rows[i]
		r.rows[cloned.ID] = &cloned
	}
	return nil
}

func (r *stubBookingRepo) CancelPendingRowsTx(_ *gorm.DB, bookingID uuid.UUID) error {
	for _, row := range r.rows {
		if row.BookingID == bookingID && row.Status != model.RowPaid {
			row.Status = model.RowCancelled
		}
	}
	return nil
}

func (r *stubBookingRepo) FindScheduleRow(_ context.Context, rowID uuid.UUID) (*model.ScheduleRow, error) {
	row, ok := r.rows[rowID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return row, nil
}

func (r *stubBookingRepo) FindScheduleRowForUpdate(_ *gorm.DB, rowID uuid.UUID) (*model.ScheduleRow, error) {
	return r.FindScheduleRow(context.Background(), rowID)
}

func (r *stubBookingRepo) UpdateScheduleRowTx(_ *gorm.DB, row *model.ScheduleRow) error {
	r.rows[row.ID] = row
	return nil
}

func (r *stubBookingRepo) ListScheduleRows(_ context.Context, bookingID uuid.UUID) ([]model.ScheduleRow, error) {
	var out []model.ScheduleRow
	for _, row := range r.rows {
		if row.BookingID == bookingID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListScheduleRowsTx(_ *gorm.DB, bookingID uuid.UUID) ([]model.ScheduleRow, error) {
	return r.ListScheduleRows(context.Background(), bookingID)
}

func (r *stubBookingRepo) HasScheduleTable() bool { return true }

func (r *stubBookingRepo) ListOverdueCandidates(_ context.Context, asOf time.Time) ([]model.ScheduleRow, error) {
	cutoff := asOf.Format("2006-01-02")
	var out []model.ScheduleRow
	for _, row := range r.rows {
		if (row.Status == model.RowPending || row.Status == model.RowPartial) &&
			row.DueDate.Format("2006-01-02") < cutoff {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) MarkRowsOverdue(_ context.Context, rowIDs []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range rowIDs {
		row, ok := r.rows[id]
		if !ok {
			continue
		}
		if row.Status == model.RowPending || row.Status == model.RowPartial {
			row.Status = model.RowOverdue
			n++
		}
	}
	return n, nil
}

var _ repository.BookingRepository = (*stubBookingRepo)(nil)

// ── PlotRepository stub ──────────────────────────────────────────────────────

type stubPlotRepo struct {
	plots map[uuid.UUID]*model.Plot
}

func newStubPlotRepo() *stubPlotRepo {
	return &stubPlotRepo{plots: make(map[uuid.UUID]*model.Plot)}
}

func (r *stubPlotRepo) DB() *gorm.DB { return nil }

func (r *stubPlotRepo) Create(_ context.Context, p *model.Plot) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.plots[p.ID] = p
	return nil
}

func (r *stubPlotRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Plot, error) {
	p, ok := r.plots[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubPlotRepo) FindByProjectAndNumber(_ context.Context, projectID uuid.UUID, plotNumber string) (*model.Plot, error) {
	for _, p := range r.plots {
		if p.ProjectID == projectID && p.PlotNumber == plotNumber {
			return p, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubPlotRepo) List(_ context.Context, _ dto.PlotFilter) ([]model.Plot, int64, error) {
	var out []model.Plot
	for _, p := range r.plots {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPlotRepo) Update(_ context.Context, p *model.Plot) error {
	r.plots[p.ID] = p
	return nil
}

func (r *stubPlotRepo) FindByIDForUpdate(_ *gorm.DB, id uuid.UUID) (*model.Plot, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPlotRepo) SetStatusTx(_ *gorm.DB, id uuid.UUID, status string, bookingID *uuid.UUID) error {
	p, ok := r.plots[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Status = status
	p.BookingID = bookingID
	return nil
}

var _ repository.PlotRepository = (*stubPlotRepo)(nil)

// ── PlanRepository stub ──────────────────────────────────────────────────────

type stubPlanRepo struct {
	plans map[uuid.UUID]*model.PaymentPlanTemplate
	// submittedRefs simulates the number of submitted bookings per template.
	submittedRefs map[uuid.UUID]int64
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{
		plans:         make(map[uuid.UUID]*model.PaymentPlanTemplate),
		submittedRefs: make(map[uuid.UUID]int64),
	}
}

func (r *stubPlanRepo) DB() *gorm.DB { return nil }

func (r *stubPlanRepo) Create(_ context.Context, t *model.PaymentPlanTemplate) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.plans[t.ID] = t
	return nil
}

func (r *stubPlanRepo) Update(_ context.Context, t *model.PaymentPlanTemplate) error {
	r.plans[t.ID] = t
	return nil
}

func (r *stubPlanRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PaymentPlanTemplate, error) {
	t, ok := r.plans[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return t, nil
}

func (r *stubPlanRepo) List(_ context.Context, includeInactive bool) ([]model.PaymentPlanTemplate, error) {
	var out []model.PaymentPlanTemplate
	for _, t := range r.plans {
		if t.Active || includeInactive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubPlanRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	t, ok := r.plans[id]
	if !ok {
		return errors.New("record not found")
	}
	t.Active = false
	return nil
}

func (r *stubPlanRepo) CountSubmittedBookings(_ context.Context, templateID uuid.UUID) (int64, error) {
	return r.submittedRefs[templateID], nil
}

var _ repository.PlanRepository = (*stubPlanRepo)(nil)

// ── PaymentEntryRepository stub ──────────────────────────────────────────────

type stubPaymentRepo struct {
	entries  map[uuid.UUID]*model.PaymentEntry
	invoices map[uuid.UUID]*model.Invoice
	nextRef  int
	nextInv  int
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{
		entries:  make(map[uuid.UUID]*model.PaymentEntry),
		invoices: make(map[uuid.UUID]*model.Invoice),
	}
}

func (r *stubPaymentRepo) DB() *gorm.DB { return nil }

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, pe *model.PaymentEntry) error {
	if pe.ID == uuid.Nil {
		pe.ID = uuid.New()
	}
	pe.CreatedAt = time.Now()
	r.entries[pe.ID] = pe
	return nil
}

func (r *stubPaymentRepo) NextReferenceNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.nextRef++
	return r.nextRef, nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PaymentEntry, error) {
	pe, ok := r.entries[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return pe, nil
}

func (r *stubPaymentRepo) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]model.PaymentEntry, error) {
	var out []model.PaymentEntry
	for _, pe := range r.entries {
		if pe.BookingID == bookingID {
			out = append(out, *pe)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.PaymentEntry, error) {
	var out []model.PaymentEntry
	for _, pe := range r.entries {
		if pe.CustomerID == customerID {
			out = append(out, *pe)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) CreateInvoice(_ context.Context, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubPaymentRepo) NextInvoiceNumber(_ context.Context) (int, error) {
	r.nextInv++
	return r.nextInv, nil
}

func (r *stubPaymentRepo) ListInvoicesByBooking(_ context.Context, bookingID uuid.UUID) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.BookingID == bookingID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

var _ repository.PaymentEntryRepository = (*stubPaymentRepo)(nil)

// ── RMRepository stub ────────────────────────────────────────────────────────

type stubRMRepo struct {
	rms map[uuid.UUID]*model.RelationshipManager
}

func newStubRMRepo() *stubRMRepo {
	return &stubRMRepo{rms: make(map[uuid.UUID]*model.RelationshipManager)}
}

func (r *stubRMRepo) Create(_ context.Context, rm *model.RelationshipManager) error {
	if rm.ID == uuid.Nil {
		rm.ID = uuid.New()
	}
	r.rms[rm.ID] = rm
	return nil
}

func (r *stubRMRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RelationshipManager, error) {
	rm, ok := r.rms[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return rm, nil
}

func (r *stubRMRepo) List(_ context.Context, includeInactive bool) ([]model.RelationshipManager, error) {
	var out []model.RelationshipManager
	for _, rm := range r.rms {
		if rm.Active || includeInactive {
			out = append(out, *rm)
		}
	}
	return out, nil
}

func (r *stubRMRepo) Update(_ context.Context, rm *model.RelationshipManager) error {
	r.rms[rm.ID] = rm
	return nil
}

func (r *stubRMRepo) CodeExists(_ context.Context, code string, excludeID uuid.UUID) (bool, error) {
	for _, rm := range r.rms {
		if rm.RMCode == code && rm.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.RMRepository = (*stubRMRepo)(nil)

// ── JobQueue stub ────────────────────────────────────────────────────────────

type enqueuedJob struct {
	queue   string
	payload any
}

type stubQueue struct {
	jobs []enqueuedJob
}

func (q *stubQueue) Enqueue(_ context.Context, queue string, payload any) error {
	q.jobs = append(q.jobs, enqueuedJob{queue: queue, payload: payload})
	return nil
}

var _ JobQueue = (*stubQueue)(nil)

// ── Shared fixtures ──────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// standardPlan is the 20/30/50 template used across the booking and payment
// tests: 20% on booking, 30% thirty days later, 50% on possession.
func standardPlan() *model.PaymentPlanTemplate {
	return &model.PaymentPlanTemplate{
		ID:              uuid.New(),
		Name:            "Standard 20-30-50",
		TotalPercentage: hundred,
		Active:          true,
		Stages: []model.PlanStage{
			{StageOrder: 1, StageName: "Booking Amount", Percentage: dec("20"), DueTrigger: model.TriggerOnBooking},
			{StageOrder: 2, StageName: "First Installment", Percentage: dec("30"), DueTrigger: model.TriggerDaysFromBooking, DueDays: 30},
			{StageOrder: 3, StageName: "On Possession", Percentage: dec("50"), DueTrigger: model.TriggerOnPossession, IsPossessionStage: true},
		},
	}
}
