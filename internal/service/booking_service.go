package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingService interface {
	Create(ctx context.Context, req dto.SaveBookingRequest) (*dto.BookingResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SaveBookingRequest) (*dto.BookingResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	List(ctx context.Context, filter dto.BookingFilter) (*dto.BookingListResponse, error)
	Submit(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	GenerateInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	plots    repository.PlotRepository
	plans    repository.PlanRepository
	payments repository.PaymentEntryRepository
}

func NewBookingService(
	bookings repository.BookingRepository,
	plots repository.PlotRepository,
	plans repository.PlanRepository,
	payments repository.PaymentEntryRepository,
) BookingService {
	return &bookingService{bookings: bookings, plots: plots, plans: plans, payments: payments}
}

// generateSchedule expands a payment plan into concrete schedule rows for a
// booking. Each row's amount is FinalValue × Percentage / 100; its due date
// comes from the stage trigger. Possession-linked stages require the booking's
// possession date to be set.
func generateSchedule(b *model.Booking, stages []model.PlanStage) ([]model.ScheduleRow, error) {
	rows := make([]model.ScheduleRow, 0, len(stages))
	for _, st := range stages {
		var due time.Time
		switch st.DueTrigger {
		case model.TriggerOnBooking:
			due = b.BookingDate
		case model.TriggerDaysFromBooking:
			due = b.BookingDate.AddDate(0, 0, st.DueDays)
		case model.TriggerOnPossession:
			if b.PossessionDate == nil {
				return nil, ErrMissingPossessionDate
			}
			due = *b.PossessionDate
		case model.TriggerDaysFromPossession:
			if b.PossessionDate == nil {
				return nil, ErrMissingPossessionDate
			}
			due = b.PossessionDate.AddDate(0, 0, st.DueDays)
		default:
			return nil, fmt.Errorf("%w: unknown due trigger %q", ErrInvalidPlan, st.DueTrigger)
		}

		amount := b.FinalValue.Mul(st.Percentage).Div(hundred).Round(2)
		rows = append(rows, model.ScheduleRow{
			BookingID:         b.ID,
			StageName:         st.StageName,
			StageOrder:        st.StageOrder,
			Percentage:        st.Percentage,
			AmountDue:         amount,
			DueDate:           due,
			AmountReceived:    decimal.Zero,
			Balance:           amount,
			Status:            model.RowPending,
			IsPossessionStage: st.IsPossessionStage,
		})
	}
	return rows, nil
}

// aggregateStatus derives a submitted booking's lifecycle status from its
// schedule rows. Cancelled rows are ignored. Precedence:
// all paid → Completed; every non-possession row paid (there must be at least
// one) with an unpaid possession row left → Possession Due; any money
// received → Payment In Progress; otherwise → Booked.
func aggregateStatus(rows []model.ScheduleRow) string {
	allPaid := true
	hasNonPossession := false
	nonPossessionPaid := true
	unpaidPossession := false
	anyReceived := false

	for _, r := range rows {
		if r.Status == model.RowCancelled {
			continue
		}
		if !r.IsPossessionStage {
			hasNonPossession = true
		}
		if r.AmountReceived.IsPositive() {
			anyReceived = true
		}
		if r.Status == model.RowPaid {
			continue
		}
		allPaid = false
		if r.IsPossessionStage {
			unpaidPossession = true
		} else {
			nonPossessionPaid = false
		}
	}

	switch {
	case allPaid:
		return model.BookingCompleted
	case hasNonPossession && nonPossessionPaid && unpaidPossession:
		return model.BookingPossessionDue
	case anyReceived:
		return model.BookingPaymentInProgress
	default:
		return model.BookingBooked
	}
}

func (s *bookingService) Create(ctx context.Context, req dto.SaveBookingRequest) (*dto.BookingResponse, error) {
	b, err := s.buildDraft(ctx, nil, req)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return bookingToResponse(b, nil), nil
}

func (s *bookingService) Update(ctx context.Context, id uuid.UUID, req dto.SaveBookingRequest) (*dto.BookingResponse, error) {
	existing, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("booking not found")
	}
	if existing.Submitted() {
		return nil, ruleErrorf("a submitted booking cannot be edited")
	}

	b, err := s.buildDraft(ctx, existing, req)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	return bookingToResponse(b, nil), nil
}

// buildDraft validates the save request against the draft-stage rules and
// returns the booking ready to persist. existing is nil for a fresh draft.
func (s *bookingService) buildDraft(ctx context.Context, existing *model.Booking, req dto.SaveBookingRequest) (*model.Booking, error) {
	plotID := uuid.MustParse(req.PlotID)
	plot, err := s.plots.FindByID(ctx, plotID)
	if err != nil {
		return nil, errors.New("plot not found")
	}

	// Re-saving a draft that already points at its own plot is fine; any other
	// booking on a non-available plot is rejected up front.
	ownPlot := existing != nil && existing.PlotID == plotID
	if plot.Status != model.PlotAvailable && !ownPlot {
		return nil, ErrPlotNotAvailable
	}

	if req.Discount.GreaterThan(req.PlotValue) {
		return nil, ErrInvalidDiscount
	}

	plan, err := s.plans.FindByID(ctx, uuid.MustParse(req.PaymentPlanID))
	if err != nil {
		return nil, errors.New("payment plan not found")
	}
	if !plan.Active {
		return nil, fmt.Errorf("%w: plan %q is inactive", ErrInvalidPlan, plan.Name)
	}

	bookingDate, err := parseDate(req.BookingDate)
	if err != nil {
		return nil, err
	}
	possessionDate, err := parseDatePtr(req.PossessionDate)
	if err != nil {
		return nil, err
	}

	b := existing
	if b == nil {
		b = &model.Booking{Status: model.BookingDraft}
	}
	b.PlotID = plotID
	b.ProjectID = plot.ProjectID
	b.CustomerID = uuid.MustParse(req.CustomerID)
	b.BookingDate = bookingDate
	b.PossessionDate = possessionDate
	b.PlotValue = req.PlotValue
	b.Discount = req.Discount
	b.FinalValue = req.PlotValue.Sub(req.Discount)
	b.PaymentPlanID = plan.ID
	b.Remarks = req.Remarks
	if req.AssignedRMID != nil {
		rmID := uuid.MustParse(*req.AssignedRMID)
		b.AssignedRMID = &rmID
	} else {
		b.AssignedRMID = nil
	}
	return b, nil
}

// Submit moves a draft through its irrevocable submission: lock the plot,
// re-check availability, allocate the booking number, generate the schedule
// and flip the plot to Booked — all in one transaction.
func (s *bookingService) Submit(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("booking not found")
	}
	if booking.Submitted() {
		return nil, ruleErrorf("booking is already submitted")
	}
	if booking.Status == model.BookingCancelled {
		return nil, ruleErrorf("a cancelled booking cannot be submitted")
	}
	if !booking.FinalValue.IsPositive() {
		return nil, ruleErrorf("final value must be greater than zero")
	}

	plan, err := s.plans.FindByID(ctx, booking.PaymentPlanID)
	if err != nil {
		return nil, errors.New("payment plan not found")
	}

	var rows []model.ScheduleRow
	err = runTx(ctx, s.bookings.DB(), func(tx *gorm.DB) error {
		plot, err := s.plots.FindByIDForUpdate(tx, booking.PlotID)
		if err != nil {
			return err
		}
		// The draft-stage check can go stale; the locked re-check is the one
		// that counts.
		if plot.Status != model.PlotAvailable {
			return ErrPlotNotAvailable
		}

		rows, err = generateSchedule(booking, plan.Stages)
		if err != nil {
			return err
		}

		num, err := s.bookings.NextBookingNumber(ctx, tx)
		if err != nil {
			return err
		}
		booking.BookingNo = num
		booking.Status = model.BookingBooked

		if err := s.bookings.MarkSubmittedTx(tx, booking.ID, num); err != nil {
			return err
		}
		if err := s.bookings.ReplaceScheduleTx(tx, booking.ID, rows); err != nil {
			return err
		}
		return s.plots.SetStatusTx(tx, booking.PlotID, model.PlotBooked, &booking.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", booking.ID.String()).
		Int("booking_no", booking.BookingNo).
		Int("schedule_rows", len(rows)).
		Msg("booking submitted")

	return bookingToResponse(booking, rows), nil
}

// Cancel voids a submitted booking: unpaid rows flip to Cancelled (paid rows
// keep their history) and the plot returns to inventory.
func (s *bookingService) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return errors.New("booking not found")
	}
	if booking.Status == model.BookingCancelled {
		return ruleErrorf("booking is already cancelled")
	}
	if booking.Status == model.BookingCompleted {
		return ruleErrorf("a completed booking cannot be cancelled")
	}

	err = runTx(ctx, s.bookings.DB(), func(tx *gorm.DB) error {
		if booking.Submitted() {
			if err := s.bookings.CancelPendingRowsTx(tx, booking.ID); err != nil {
				return err
			}
			if err := s.plots.SetStatusTx(tx, booking.PlotID, model.PlotAvailable, nil); err != nil {
				return err
			}
		}
		return s.bookings.MarkCancelledTx(tx, booking.ID, fmt.Sprintf("Cancelled: %s", reason))
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("booking_id", booking.ID.String()).
		Str("reason", reason).
		Msg("booking cancelled")
	return nil
}

func (s *bookingService) GenerateInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("booking not found")
	}
	if !booking.Submitted() {
		return nil, ErrNotSubmitted
	}

	num, err := s.payments.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	inv := &model.Invoice{
		InvoiceNo:   num,
		BookingID:   booking.ID,
		CustomerID:  booking.CustomerID,
		Amount:      booking.FinalValue,
		PostingDate: time.Now(),
	}
	if err := s.payments.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{
		ID:          inv.ID.String(),
		InvoiceNo:   inv.InvoiceNo,
		BookingID:   inv.BookingID.String(),
		CustomerID:  inv.CustomerID.String(),
		Amount:      inv.Amount,
		PostingDate: fmtDate(inv.PostingDate),
	}, nil
}

func (s *bookingService) Get(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("booking not found")
	}
	return bookingToResponse(booking, booking.Schedule), nil
}

func (s *bookingService) List(ctx context.Context, filter dto.BookingFilter) (*dto.BookingListResponse, error) {
	bookings, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		data = append(data, *bookingToResponse(&bookings[i], bookings[i].Schedule))
	}
	return &dto.BookingListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func bookingToResponse(b *model.Booking, rows []model.ScheduleRow) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:             b.ID.String(),
		BookingNo:      b.BookingNo,
		PlotID:         b.PlotID.String(),
		ProjectID:      b.ProjectID.String(),
		CustomerID:     b.CustomerID.String(),
		BookingDate:    fmtDate(b.BookingDate),
		PossessionDate: fmtDatePtr(b.PossessionDate),
		PlotValue:      b.PlotValue,
		Discount:       b.Discount,
		FinalValue:     b.FinalValue,
		PaymentPlanID:  b.PaymentPlanID.String(),
		Status:         b.Status,
		Remarks:        b.Remarks,
	}
	if b.AssignedRMID != nil {
		s := b.AssignedRMID.String()
		resp.AssignedRMID = &s
	}
	for _, r := range rows {
		resp.Schedule = append(resp.Schedule, scheduleRowToResponse(r))
	}
	return resp
}

func scheduleRowToResponse(r model.ScheduleRow) dto.ScheduleRowResponse {
	return dto.ScheduleRowResponse{
		ID:                r.ID.String(),
		StageName:         r.StageName,
		StageOrder:        r.StageOrder,
		Percentage:        r.Percentage,
		AmountDue:         r.AmountDue,
		DueDate:           fmtDate(r.DueDate),
		AmountReceived:    r.AmountReceived,
		Balance:           r.Balance,
		Status:            r.Status,
		IsPossessionStage: r.IsPossessionStage,
		ReceiptDate:       fmtDatePtr(r.ReceiptDate),
	}
}
