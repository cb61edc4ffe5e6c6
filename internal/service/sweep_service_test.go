package service

import (
	"context"
	"testing"

	"github.com/Aniket-89/recrm/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweepFixture submits the standard booking and assigns it an RM with an
// email address, so alert digests have somewhere to go.
type sweepFixture struct {
	*bookingFixture
	rms   *stubRMRepo
	queue *stubQueue
	svc   SweepService
	rm    *model.RelationshipManager
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()
	bf := newBookingFixture(t)

	rms := newStubRMRepo()
	email := "rahul@example.com"
	rm := &model.RelationshipManager{RMName: "Rahul Sharma", RMCode: "RS", Email: &email, Active: true}
	require.NoError(t, rms.Create(context.Background(), rm))
	bf.booking.AssignedRMID = &rm.ID

	_, err := bf.svc.Submit(context.Background(), bf.booking.ID)
	require.NoError(t, err)

	queue := &stubQueue{}
	return &sweepFixture{
		bookingFixture: bf,
		rms:            rms,
		queue:          queue,
		svc:            NewSweepService(bf.bookings, rms, queue),
		rm:             rm,
	}
}

func TestSweepOverdue(t *testing.T) {
	f := newSweepFixture(t)

	// Booking date 2025-01-01: stage 1 due 2025-01-01, stage 2 due 2025-01-31,
	// stage 3 due 2025-06-01. Sweeping on Feb 1 catches the first two.
	marked, err := f.svc.SweepOverdue(context.Background(), date("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	overdue := 0
	for _, row := range f.bookings.rows {
		if row.Status == model.RowOverdue {
			overdue++
		}
	}
	assert.Equal(t, 2, overdue)
}

func TestSweepIsIdempotent(t *testing.T) {
	f := newSweepFixture(t)

	marked, err := f.svc.SweepOverdue(context.Background(), date("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	marked, err = f.svc.SweepOverdue(context.Background(), date("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}

func TestSweepDueTodayNotOverdue(t *testing.T) {
	f := newSweepFixture(t)

	// Stage 1 is due exactly on the sweep date — overdue means strictly past due.
	marked, err := f.svc.SweepOverdue(context.Background(), date("2025-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}

func TestSweepReaggregatesStatus(t *testing.T) {
	f := newSweepFixture(t)

	// Both installments paid, possession stage still pending.
	for _, row := range f.bookings.rows {
		if !row.IsPossessionStage {
			row.Status = model.RowPaid
			row.AmountReceived = row.AmountDue
		}
	}

	_, err := f.svc.SweepOverdue(context.Background(), date("2025-06-02"))
	require.NoError(t, err)
	assert.Equal(t, model.BookingPossessionDue, f.bookings.bookings[f.booking.ID].Status)
}

func TestSweepSendsRMDigest(t *testing.T) {
	f := newSweepFixture(t)

	_, err := f.svc.SweepOverdue(context.Background(), date("2025-02-01"))
	require.NoError(t, err)

	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, QueueEmail, f.queue.jobs[0].queue)

	job, ok := f.queue.jobs[0].payload.(EmailJob)
	require.True(t, ok)
	assert.Equal(t, []string{"rahul@example.com"}, job.To)
	assert.Contains(t, job.Subject, "2 installments")
	assert.Contains(t, job.Body, "Rahul Sharma")
	assert.Contains(t, job.Body, "Booking Amount")
}

func TestSweepSkipsRMWithoutEmail(t *testing.T) {
	f := newSweepFixture(t)
	f.rm.Email = nil

	marked, err := f.svc.SweepOverdue(context.Background(), date("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, 2, marked)
	assert.Empty(t, f.queue.jobs)
}

func TestSweepNoCandidates(t *testing.T) {
	f := newSweepFixture(t)

	marked, err := f.svc.SweepOverdue(context.Background(), date("2024-12-31"))
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
	assert.Empty(t, f.queue.jobs)
}
