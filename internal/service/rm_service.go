package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"
	"github.com/Aniket-89/recrm/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RMService interface {
	Create(ctx context.Context, req dto.SaveRMRequest) (*dto.RMResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SaveRMRequest) (*dto.RMResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RMResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.RMResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Performance(ctx context.Context, id uuid.UUID) (*dto.RMPerformanceResponse, error)
}

type rmService struct {
	rms      repository.RMRepository
	bookings repository.BookingRepository
}

func NewRMService(rms repository.RMRepository, bookings repository.BookingRepository) RMService {
	return &rmService{rms: rms, bookings: bookings}
}

// initials extracts the uppercase initials from a name: "Rahul Sharma" → "RS".
func initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) {
				b.WriteRune(unicode.ToUpper(r))
				break
			}
		}
	}
	return b.String()
}

// generateCode picks a free RM code from the name's initials, suffixing a
// counter when the bare initials are taken ("RS" → "RS01" → "RS02" …).
func (s *rmService) generateCode(ctx context.Context, name string, excludeID uuid.UUID) (string, error) {
	base := initials(name)
	if base == "" {
		base = "RM"
	}

	taken, err := s.rms.CodeExists(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	for i := 1; i <= 99; i++ {
		code := fmt.Sprintf("%s%02d", base, i)
		taken, err := s.rms.CodeExists(ctx, code, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ruleErrorf("no free RM code for initials %q", base)
}

func (s *rmService) Create(ctx context.Context, req dto.SaveRMRequest) (*dto.RMResponse, error) {
	rm := &model.RelationshipManager{
		RMName: req.RMName,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: true,
	}
	code, err := s.resolveCode(ctx, req, uuid.Nil)
	if err != nil {
		return nil, err
	}
	rm.RMCode = code

	if err := s.rms.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rmToResponse(rm), nil
}

func (s *rmService) Update(ctx context.Context, id uuid.UUID, req dto.SaveRMRequest) (*dto.RMResponse, error) {
	rm, err := s.rms.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("relationship manager not found")
	}

	rm.RMName = req.RMName
	rm.Email = req.Email
	rm.Phone = req.Phone
	if req.RMCode != nil && *req.RMCode != "" && *req.RMCode != rm.RMCode {
		code, err := s.resolveCode(ctx, req, id)
		if err != nil {
			return nil, err
		}
		rm.RMCode = code
	}

	if err := s.rms.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rmToResponse(rm), nil
}

func (s *rmService) resolveCode(ctx context.Context, req dto.SaveRMRequest, excludeID uuid.UUID) (string, error) {
	if req.RMCode != nil && *req.RMCode != "" {
		code := strings.ToUpper(strings.TrimSpace(*req.RMCode))
		taken, err := s.rms.CodeExists(ctx, code, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ruleErrorf("RM code %q is already in use", code)
		}
		return code, nil
	}
	return s.generateCode(ctx, req.RMName, excludeID)
}

func (s *rmService) Get(ctx context.Context, id uuid.UUID) (*dto.RMResponse, error) {
	rm, err := s.rms.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("relationship manager not found")
	}
	return rmToResponse(rm), nil
}

func (s *rmService) List(ctx context.Context, includeInactive bool) ([]dto.RMResponse, error) {
	rms, err := s.rms.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RMResponse, 0, len(rms))
	for i := range rms {
		out = append(out, *rmToResponse(&rms[i]))
	}
	return out, nil
}

func (s *rmService) Deactivate(ctx context.Context, id uuid.UUID) error {
	rm, err := s.rms.FindByID(ctx, id)
	if err != nil {
		return errors.New("relationship manager not found")
	}
	rm.Active = false
	return s.rms.Update(ctx, rm)
}

// Performance summarizes an RM's book: completed sales, revenue booked and
// the in-flight bookings they still shepherd.
func (s *rmService) Performance(ctx context.Context, id uuid.UUID) (*dto.RMPerformanceResponse, error) {
	rm, err := s.rms.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("relationship manager not found")
	}

	bookings, err := s.bookings.ListByRM(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.RMPerformanceResponse{
		RMID:         rm.ID.String(),
		RMName:       rm.RMName,
		TotalRevenue: decimal.Zero,
	}
	for i := range bookings {
		b := &bookings[i]
		switch b.Status {
		case model.BookingCompleted:
			resp.ClosedBookings++
			resp.TotalRevenue = resp.TotalRevenue.Add(b.FinalValue)
		case model.BookingBooked, model.BookingPaymentInProgress, model.BookingPossessionDue:
			resp.ActiveBookings = append(resp.ActiveBookings, *bookingToResponse(b, nil))
		}
	}
	return resp, nil
}

func rmToResponse(rm *model.RelationshipManager) *dto.RMResponse {
	return &dto.RMResponse{
		ID:     rm.ID.String(),
		RMName: rm.RMName,
		RMCode: rm.RMCode,
		Email:  rm.Email,
		Phone:  rm.Phone,
		Active: rm.Active,
	}
}
