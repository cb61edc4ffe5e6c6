package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SweepService runs the daily overdue pass: every Pending/Partial row whose
// due date has passed flips to Overdue, affected bookings are re-aggregated,
// and assigned RMs get one digest email per sweep.
type SweepService interface {
	SweepOverdue(ctx context.Context, asOf time.Time) (int, error)
}

type sweepService struct {
	bookings repository.BookingRepository
	rms      repository.RMRepository
	queue    JobQueue
}

func NewSweepService(bookings repository.BookingRepository, rms repository.RMRepository, queue JobQueue) SweepService {
	return &sweepService{bookings: bookings, rms: rms, queue: queue}
}

func (s *sweepService) SweepOverdue(ctx context.Context, asOf time.Time) (int, error) {
	// Fresh deployments can start the cron before the first migration.
	if !s.bookings.HasScheduleTable() {
		log.Warn().Msg("overdue sweep skipped: schedule table missing")
		return 0, nil
	}

	candidates, err := s.bookings.ListOverdueCandidates(ctx, asOf)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	byBooking := make(map[uuid.UUID][]model.ScheduleRow)
	for _, row := range candidates {
		ids = append(ids, row.ID)
		byBooking[row.BookingID] = append(byBooking[row.BookingID], row)
	}

	marked, err := s.bookings.MarkRowsOverdue(ctx, ids)
	if err != nil {
		return 0, err
	}

	// Overdue possession stages can move a booking to Possession Due, so the
	// sweep re-aggregates every affected booking.
	alerts := make(map[uuid.UUID][]string)
	for bookingID := range byBooking {
		booking, err := s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID.String()).Msg("sweep: booking lookup failed")
			continue
		}
		if !booking.Submitted() {
			continue
		}

		rows, err := s.bookings.ListScheduleRows(ctx, bookingID)
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID.String()).Msg("sweep: schedule lookup failed")
			continue
		}
		if status := aggregateStatus(rows); status != booking.Status {
			if err := s.bookings.SetStatus(ctx, bookingID, status); err != nil {
				log.Error().Err(err).Str("booking_id", bookingID.String()).Msg("sweep: status update failed")
				continue
			}
		}

		if booking.AssignedRMID != nil {
			for _, row := range byBooking[bookingID] {
				alerts[*booking.AssignedRMID] = append(alerts[*booking.AssignedRMID],
					fmt.Sprintf("Booking #%d — stage %q, %s due since %s",
						booking.BookingNo, row.StageName, row.Balance.StringFixed(2), fmtDate(row.DueDate)))
			}
		}
	}

	s.sendRMAlerts(ctx, alerts)

	log.Info().
		Int64("rows_marked", marked).
		Int("bookings_affected", len(byBooking)).
		Time("as_of", asOf).
		Msg("overdue sweep finished")
	return int(marked), nil
}

func (s *sweepService) sendRMAlerts(ctx context.Context, alerts map[uuid.UUID][]string) {
	if s.queue == nil {
		return
	}
	for rmID, lines := range alerts {
		rm, err := s.rms.FindByID(ctx, rmID)
		if err != nil || rm.Email == nil || *rm.Email == "" {
			continue
		}
		job := EmailJob{
			To:      []string{*rm.Email},
			Subject: fmt.Sprintf("Overdue payments digest (%d installments)", len(lines)),
			Body: fmt.Sprintf("Hi %s,\n\nThe following installments on your bookings are overdue:\n\n%s\n",
				rm.RMName, strings.Join(lines, "\n")),
		}
		if err := s.queue.Enqueue(ctx, QueueEmail, job); err != nil {
			log.Error().Err(err).Str("rm_id", rmID.String()).Msg("sweep: failed to enqueue RM alert")
		}
	}
}
