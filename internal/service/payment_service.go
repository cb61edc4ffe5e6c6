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

type PaymentService interface {
	ReceivePayment(ctx context.Context, bookingID, rowID uuid.UUID, req dto.ReceivePaymentRequest) (*dto.PaymentEntryResponse, error)
	RefreshStatus(ctx context.Context, bookingID uuid.UUID) (string, error)
	ListPayments(ctx context.Context, bookingID uuid.UUID) ([]dto.PaymentEntryResponse, error)
}

type paymentService struct {
	bookings repository.BookingRepository
	payments repository.PaymentEntryRepository
	queue    JobQueue
}

func NewPaymentService(
	bookings repository.BookingRepository,
	payments repository.PaymentEntryRepository,
	queue JobQueue,
) PaymentService {
	return &paymentService{bookings: bookings, payments: payments, queue: queue}
}

// ReceivePayment records funds against one schedule row. The row is locked
// for the duration of the transaction so two tellers cannot both pass the
// overpayment check against the same balance. The subledger entry, the row
// update and the booking status re-aggregation commit atomically.
func (s *paymentService) ReceivePayment(ctx context.Context, bookingID, rowID uuid.UUID, req dto.ReceivePaymentRequest) (*dto.PaymentEntryResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errors.New("booking not found")
	}
	if !booking.Submitted() {
		return nil, ErrNotSubmitted
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	var entry *model.PaymentEntry
	err = runTx(ctx, s.bookings.DB(), func(tx *gorm.DB) error {
		row, err := s.bookings.FindScheduleRowForUpdate(tx, rowID)
		if err != nil {
			return ErrRowNotFound
		}
		if row.BookingID != bookingID {
			return ErrRowNotFound
		}
		switch row.Status {
		case model.RowPaid:
			return ErrAlreadyPaid
		case model.RowCancelled:
			return ruleErrorf("this stage was cancelled and can no longer receive payments")
		}
		// Rounding epsilon: a payment may exceed the balance by at most 0.01.
		if req.Amount.GreaterThan(row.Balance.Add(moneyTolerance)) {
			return ErrOverpayment
		}

		num, err := s.payments.NextReferenceNumber(ctx, tx)
		if err != nil {
			return err
		}
		entry = &model.PaymentEntry{
			ReferenceNo:     fmt.Sprintf("PE-%05d", num),
			BookingID:       bookingID,
			ScheduleRowID:   row.ID,
			CustomerID:      booking.CustomerID,
			Amount:          req.Amount,
			PaymentDate:     paymentDate,
			PaymentMode:     req.PaymentMode,
			ReferenceDetail: req.Reference,
			Remarks:         req.Remarks,
		}
		if err := s.payments.CreateTx(tx, entry); err != nil {
			return err
		}

		row.AmountReceived = row.AmountReceived.Add(req.Amount)
		row.Balance = row.AmountDue.Sub(row.AmountReceived)
		if row.Balance.IsNegative() {
			row.Balance = decimal.Zero
		}
		if row.Balance.LessThanOrEqual(moneyTolerance) {
			row.Balance = decimal.Zero
			row.Status = model.RowPaid
			row.ReceiptDate = &paymentDate
		} else {
			row.Status = model.RowPartial
		}
		row.PaymentEntryID = &entry.ID
		row.UpdatedAt = time.Now()
		if err := s.bookings.UpdateScheduleRowTx(tx, row); err != nil {
			return err
		}

		rows, err := s.bookings.ListScheduleRowsTx(tx, bookingID)
		if err != nil {
			return err
		}
		return s.bookings.SetStatusTx(tx, bookingID, aggregateStatus(rows))
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", bookingID.String()).
		Str("reference_no", entry.ReferenceNo).
		Str("amount", req.Amount.String()).
		Msg("payment received")

	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, QueueReceipt, ReceiptJob{PaymentEntryID: entry.ID.String()}); err != nil {
			// The payment is committed; a lost receipt job is only a logging event.
			log.Error().Err(err).Str("payment_entry_id", entry.ID.String()).Msg("failed to enqueue receipt job")
		}
	}

	return paymentEntryToResponse(entry), nil
}

// RefreshStatus re-derives the booking status from its schedule rows and
// persists it when changed. Idempotent.
func (s *paymentService) RefreshStatus(ctx context.Context, bookingID uuid.UUID) (string, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return "", errors.New("booking not found")
	}
	if !booking.Submitted() {
		return booking.Status, nil
	}

	rows, err := s.bookings.ListScheduleRows(ctx, bookingID)
	if err != nil {
		return "", err
	}
	status := aggregateStatus(rows)
	if status != booking.Status {
		if err := s.bookings.SetStatus(ctx, bookingID, status); err != nil {
			return "", err
		}
	}
	return status, nil
}

func (s *paymentService) ListPayments(ctx context.Context, bookingID uuid.UUID) ([]dto.PaymentEntryResponse, error) {
	entries, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, *paymentEntryToResponse(&entries[i]))
	}
	return out, nil
}

func paymentEntryToResponse(pe *model.PaymentEntry) *dto.PaymentEntryResponse {
	return &dto.PaymentEntryResponse{
		ID:          pe.ID.String(),
		ReferenceNo: pe.ReferenceNo,
		BookingID:   pe.BookingID.String(),
		Amount:      pe.Amount,
		PaymentDate: fmtDate(pe.PaymentDate),
		PaymentMode: pe.PaymentMode,
		Reference:   pe.ReferenceDetail,
	}
}
