package service

import (
	"context"
	"errors"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.SaveCustomerRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SaveCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, search string) ([]dto.CustomerResponse, error)
	Summary(ctx context.Context, id uuid.UUID) (*dto.CustomerSummaryResponse, error)
}

type customerService struct {
	customers repository.CustomerRepository
	bookings  repository.BookingRepository
	payments  repository.PaymentEntryRepository
	documents repository.DocumentRepository
}

func NewCustomerService(
	customers repository.CustomerRepository,
	bookings repository.BookingRepository,
	payments repository.PaymentEntryRepository,
	documents repository.DocumentRepository,
) CustomerService {
	return &customerService{
		customers: customers,
		bookings:  bookings,
		payments:  payments,
		documents: documents,
	}
}

func (s *customerService) Create(ctx context.Context, req dto.SaveCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.SaveCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	c.Name = req.Name
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	return customerToResponse(c), nil
}

func (s *customerService) List(ctx context.Context, search string) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.List(ctx, search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *customerToResponse(&customers[i]))
	}
	return out, nil
}

// summaryBookingCap bounds how many bookings get folded into one summary
// response. Nobody holds this many plots; it only guards the query.
const summaryBookingCap = 200

// Summary assembles the customer 360 view: profile, bookings with their
// schedules, the receipts subledger and the document cabinet, plus portfolio
// totals across submitted bookings.
func (s *customerService) Summary(ctx context.Context, id uuid.UUID) (*dto.CustomerSummaryResponse, error) {
	cust, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	bookings, _, err := s.bookings.List(ctx, dto.BookingFilter{
		CustomerID: id.String(), Page: 1, Limit: summaryBookingCap,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CustomerSummaryResponse{
		Customer:         *customerToResponse(cust),
		Bookings:         make([]dto.BookingResponse, 0, len(bookings)),
		TotalBookedValue: decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}

	for i := range bookings {
		b := &bookings[i]
		rows, err := s.bookings.ListScheduleRows(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		resp.Bookings = append(resp.Bookings, *bookingToResponse(b, rows))

		if !b.Submitted() {
			continue
		}
		resp.TotalBookedValue = resp.TotalBookedValue.Add(b.FinalValue)
		for _, row := range rows {
			if row.Status != model.RowCancelled {
				resp.TotalOutstanding = resp.TotalOutstanding.Add(row.Balance)
			}
		}
	}

	entries, err := s.payments.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.Payments = make([]dto.PaymentEntryResponse, 0, len(entries))
	for i := range entries {
		resp.Payments = append(resp.Payments, *paymentEntryToResponse(&entries[i]))
		resp.TotalPaid = resp.TotalPaid.Add(entries[i].Amount)
	}

	docs, err := s.documents.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.Documents = make([]dto.DocumentResponse, 0, len(docs))
	for i := range docs {
		resp.Documents = append(resp.Documents, *documentEntryToResponse(&docs[i]))
	}
	return resp, nil
}

func documentEntryToResponse(d *model.DocumentEntry) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:           d.ID.String(),
		CustomerID:   d.CustomerID.String(),
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		FilePath:     d.FilePath,
		UploadedBy:   d.UploadedBy,
		UploadedOn:   d.UploadedOn.Format("2006-01-02"),
	}
	if d.BookingID != nil {
		s := d.BookingID.String()
		resp.BookingID = &s
	}
	return resp
}

func customerToResponse(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}
