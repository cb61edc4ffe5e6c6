package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ string) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

type stubDocumentRepo struct {
	docs map[uuid.UUID]*model.DocumentEntry
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{docs: make(map[uuid.UUID]*model.DocumentEntry)}
}

func (r *stubDocumentRepo) Create(_ context.Context, d *model.DocumentEntry) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.docs[d.ID] = d
	return nil
}

func (r *stubDocumentRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.DocumentEntry, error) {
	var out []model.DocumentEntry
	for _, d := range r.docs {
		if d.CustomerID == customerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

var _ repository.DocumentRepository = (*stubDocumentRepo)(nil)

// summaryFixture: one customer with a partially paid submitted booking, a
// draft and one document; a second customer's booking that must stay out of
// the view.
type summaryFixture struct {
	svc      CustomerService
	customer *model.Customer
}

func newSummaryFixture(t *testing.T) *summaryFixture {
	t.Helper()
	customers := newStubCustomerRepo()
	bookings := newStubBookingRepo()
	payments := newStubPaymentRepo()
	documents := newStubDocumentRepo()

	f := &summaryFixture{
		svc:      NewCustomerService(customers, bookings, payments, documents),
		customer: &model.Customer{Name: "Asha Verma"},
	}
	ctx := context.Background()
	require.NoError(t, customers.Create(ctx, f.customer))

	submitted := &model.Booking{
		ID:         uuid.New(),
		BookingNo:  1001,
		CustomerID: f.customer.ID,
		PlotID:     uuid.New(),
		ProjectID:  uuid.New(),
		FinalValue: dec("1000000"),
		Status:     model.BookingPaymentInProgress,
	}
	require.NoError(t, bookings.Create(ctx, submitted))
	require.NoError(t, bookings.ReplaceScheduleTx(nil, submitted.ID, []model.ScheduleRow{
		{BookingID: submitted.ID, StageOrder: 1, AmountDue: dec("200000"),
			AmountReceived: dec("200000"), Balance: decimal.Zero, Status: model.RowPaid},
		{BookingID: submitted.ID, StageOrder: 2, AmountDue: dec("300000"),
			AmountReceived: decimal.Zero, Balance: dec("300000"), Status: model.RowPending},
		{BookingID: submitted.ID, StageOrder: 3, AmountDue: dec("500000"),
			AmountReceived: decimal.Zero, Balance: dec("500000"), Status: model.RowPending,
			IsPossessionStage: true},
	}))
	require.NoError(t, payments.CreateTx(nil, &model.PaymentEntry{
		ReferenceNo: "PE-00001",
		BookingID:   submitted.ID,
		CustomerID:  f.customer.ID,
		Amount:      dec("200000"),
		PaymentDate: date("2025-01-05"),
		PaymentMode: "UPI",
	}))

	draft := &model.Booking{
		ID:         uuid.New(),
		CustomerID: f.customer.ID,
		PlotID:     uuid.New(),
		ProjectID:  uuid.New(),
		FinalValue: dec("500000"),
		Status:     model.BookingDraft,
	}
	require.NoError(t, bookings.Create(ctx, draft))

	require.NoError(t, documents.Create(ctx, &model.DocumentEntry{
		CustomerID:   f.customer.ID,
		DocumentType: "ID Proof",
		FileName:     "aadhaar.pdf",
		FilePath:     "/docs/aadhaar.pdf",
		UploadedBy:   "admin",
		UploadedOn:   time.Now(),
	}))

	other := &model.Booking{
		ID:         uuid.New(),
		BookingNo:  1002,
		CustomerID: uuid.New(),
		PlotID:     uuid.New(),
		ProjectID:  uuid.New(),
		FinalValue: dec("750000"),
		Status:     model.BookingBooked,
	}
	require.NoError(t, bookings.Create(ctx, other))
	return f
}

func TestCustomerSummary(t *testing.T) {
	f := newSummaryFixture(t)

	resp, err := f.svc.Summary(context.Background(), f.customer.ID)
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", resp.Customer.Name)
	assert.Len(t, resp.Bookings, 2)
	assert.Len(t, resp.Payments, 1)
	assert.Len(t, resp.Documents, 1)

	// The draft's 500,000 stays out of the booked and outstanding totals.
	assert.True(t, resp.TotalBookedValue.Equal(dec("1000000")), "got %s", resp.TotalBookedValue)
	assert.True(t, resp.TotalPaid.Equal(dec("200000")), "got %s", resp.TotalPaid)
	assert.True(t, resp.TotalOutstanding.Equal(dec("800000")), "got %s", resp.TotalOutstanding)
}

func TestCustomerSummaryUnknownCustomer(t *testing.T) {
	f := newSummaryFixture(t)

	_, err := f.svc.Summary(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
