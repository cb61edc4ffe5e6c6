package service

import (
	"context"
	"testing"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paymentFixture builds on the booking fixture with the booking already
// submitted, so every test starts from a live schedule.
type paymentFixture struct {
	*bookingFixture
	queue *stubQueue
	svc   PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	bf := newBookingFixture(t)
	_, err := bf.svc.Submit(context.Background(), bf.booking.ID)
	require.NoError(t, err)

	queue := &stubQueue{}
	return &paymentFixture{
		bookingFixture: bf,
		queue:          queue,
		svc:            NewPaymentService(bf.bookings, bf.payments, queue),
	}
}

func (f *paymentFixture) row(t *testing.T, order int) *model.ScheduleRow {
	t.Helper()
	for _, row := range f.bookings.rows {
		if row.BookingID == f.booking.ID && row.StageOrder == order {
			return row
		}
	}
	t.Fatalf("no schedule row with order %d", order)
	return nil
}

func payReq(amount string) dto.ReceivePaymentRequest {
	return dto.ReceivePaymentRequest{
		Amount:      dec(amount),
		PaymentDate: "2025-01-05",
		PaymentMode: "Bank Transfer",
	}
}

func TestReceivePaymentExact(t *testing.T) {
	f := newPaymentFixture(t)
	row := f.row(t, 1) // 200,000 due

	resp, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("200000"))
	require.NoError(t, err)
	assert.Equal(t, "PE-00001", resp.ReferenceNo)
	assert.True(t, resp.Amount.Equal(dec("200000")))

	assert.Equal(t, model.RowPaid, row.Status)
	assert.True(t, row.Balance.IsZero())
	require.NotNil(t, row.ReceiptDate)
	assert.Equal(t, "2025-01-05", row.ReceiptDate.Format("2006-01-02"))

	// One stage paid out of three → Payment In Progress.
	assert.Equal(t, model.BookingPaymentInProgress, f.bookings.bookings[f.booking.ID].Status)

	// Receipt job queued after commit.
	require.Len(t, f.queue.jobs, 1)
	assert.Equal(t, QueueReceipt, f.queue.jobs[0].queue)
}

func TestReceivePaymentPartial(t *testing.T) {
	f := newPaymentFixture(t)
	row := f.row(t, 1)

	_, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("50000"))
	require.NoError(t, err)

	assert.Equal(t, model.RowPartial, row.Status)
	assert.True(t, row.Balance.Equal(dec("150000")))
	assert.Nil(t, row.ReceiptDate)

	// Second partial clears the stage.
	_, err = f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("150000"))
	require.NoError(t, err)
	assert.Equal(t, model.RowPaid, row.Status)
}

func TestReceivePaymentOverpaymentBoundary(t *testing.T) {
	f := newPaymentFixture(t)
	row := f.row(t, 1) // 200,000 due

	// Balance + 0.02 is past the epsilon.
	_, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("200000.02"))
	require.ErrorIs(t, err, ErrOverpayment)
	assert.Equal(t, model.RowPending, row.Status)

	// Balance + 0.01 is within it, and the row closes at zero balance.
	_, err = f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("200000.01"))
	require.NoError(t, err)
	assert.Equal(t, model.RowPaid, row.Status)
	assert.True(t, row.Balance.IsZero())
}

func TestReceivePaymentAlreadyPaid(t *testing.T) {
	f := newPaymentFixture(t)
	row := f.row(t, 1)

	_, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("200000"))
	require.NoError(t, err)

	_, err = f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("1"))
	require.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestReceivePaymentInvalidAmount(t *testing.T) {
	f := newPaymentFixture(t)
	row := f.row(t, 1)

	_, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("0"))
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("-5"))
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestReceivePaymentOnDraftBooking(t *testing.T) {
	bf := newBookingFixture(t)
	svc := NewPaymentService(bf.bookings, bf.payments, nil)

	_, err := svc.ReceivePayment(context.Background(), bf.booking.ID, uuid.New(), payReq("100"))
	require.ErrorIs(t, err, ErrNotSubmitted)
}

func TestReceivePaymentRowFromOtherBooking(t *testing.T) {
	f := newPaymentFixture(t)

	// A row parked under a different booking must not be payable through this one.
	foreign := &model.ScheduleRow{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		AmountDue: dec("1000"),
		Balance:   dec("1000"),
		Status:    model.RowPending,
	}
	f.bookings.rows[foreign.ID] = foreign

	_, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, foreign.ID, payReq("1000"))
	require.ErrorIs(t, err, ErrRowNotFound)
}

func TestReceivePaymentCancelledRow(t *testing.T) {
	f := newPaymentFixture(t)
	row := f.row(t, 2)
	row.Status = model.RowCancelled

	_, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq("100"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestPayingAllStagesCompletesBooking(t *testing.T) {
	f := newPaymentFixture(t)

	for order, amount := range map[int]string{1: "200000", 2: "300000", 3: "500000"} {
		row := f.row(t, order)
		_, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, payReq(amount))
		require.NoError(t, err)
	}

	assert.Equal(t, model.BookingCompleted, f.bookings.bookings[f.booking.ID].Status)
	assert.Len(t, f.queue.jobs, 3)
}

func TestReceivePaymentRecordsSubledgerEntry(t *testing.T) {
	f := newPaymentFixture(t)
	row := f.row(t, 1)

	ref := "NEFT-998877"
	req := payReq("200000")
	req.Reference = &ref
	_, err := f.svc.ReceivePayment(context.Background(), f.booking.ID, row.ID, req)
	require.NoError(t, err)

	entries, err := f.payments.ListByBooking(context.Background(), f.booking.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, row.ID, entries[0].ScheduleRowID)
	assert.Equal(t, f.booking.CustomerID, entries[0].CustomerID)
	assert.Equal(t, "Bank Transfer", entries[0].PaymentMode)
	require.NotNil(t, entries[0].ReferenceDetail)
	assert.Equal(t, ref, *entries[0].ReferenceDetail)
}

func TestRefreshStatus(t *testing.T) {
	f := newPaymentFixture(t)

	// Force every row to Paid behind the service's back, then refresh.
	for _, row := range f.bookings.rows {
		if row.BookingID == f.booking.ID {
			row.Status = model.RowPaid
			row.AmountReceived = row.AmountDue
			row.Balance = decimal.Zero
		}
	}

	status, err := f.svc.RefreshStatus(context.Background(), f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCompleted, status)
	assert.Equal(t, model.BookingCompleted, f.bookings.bookings[f.booking.ID].Status)

	// Idempotent.
	status, err = f.svc.RefreshStatus(context.Background(), f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCompleted, status)
}
