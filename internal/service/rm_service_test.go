package service

import (
	"context"
	"testing"

	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Rahul Sharma", "RS"},
		{"priya verma", "PV"},
		{"Anand", "A"},
		{"  Jai  Prakash  Narayan ", "JPN"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, initials(tt.name), "initials(%q)", tt.name)
	}
}

func TestRMCreateGeneratesCode(t *testing.T) {
	rms := newStubRMRepo()
	svc := NewRMService(rms, newStubBookingRepo())

	resp, err := svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Rahul Sharma"})
	require.NoError(t, err)
	assert.Equal(t, "RS", resp.RMCode)
	assert.True(t, resp.Active)
}

func TestRMCreateCodeCollision(t *testing.T) {
	rms := newStubRMRepo()
	svc := NewRMService(rms, newStubBookingRepo())

	first, err := svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Rahul Sharma"})
	require.NoError(t, err)
	assert.Equal(t, "RS", first.RMCode)

	second, err := svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Rita Singh"})
	require.NoError(t, err)
	assert.Equal(t, "RS01", second.RMCode)

	third, err := svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Ravi Saxena"})
	require.NoError(t, err)
	assert.Equal(t, "RS02", third.RMCode)
}

func TestRMExplicitCode(t *testing.T) {
	rms := newStubRMRepo()
	svc := NewRMService(rms, newStubBookingRepo())

	code := "tl7"
	resp, err := svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Tanvi Lal", RMCode: &code})
	require.NoError(t, err)
	assert.Equal(t, "TL7", resp.RMCode)

	// Same explicit code on another RM is a conflict.
	_, err = svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Tarun Luthra", RMCode: &code})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestRMUpdateKeepsOwnCode(t *testing.T) {
	rms := newStubRMRepo()
	svc := NewRMService(rms, newStubBookingRepo())

	created, err := svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Rahul Sharma"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// Re-saving with the same code must not collide with itself.
	code := created.RMCode
	updated, err := svc.Update(context.Background(), id, dto.SaveRMRequest{RMName: "Rahul K Sharma", RMCode: &code})
	require.NoError(t, err)
	assert.Equal(t, "RS", updated.RMCode)
	assert.Equal(t, "Rahul K Sharma", updated.RMName)
}

func TestRMPerformance(t *testing.T) {
	rms := newStubRMRepo()
	bookings := newStubBookingRepo()
	svc := NewRMService(rms, bookings)

	created, err := svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Rahul Sharma"})
	require.NoError(t, err)
	rmID := uuid.MustParse(created.ID)

	mk := func(status, finalValue string) {
		require.NoError(t, bookings.Create(context.Background(), &model.Booking{
			AssignedRMID: &rmID,
			CustomerID:   uuid.New(),
			PlotID:       uuid.New(),
			ProjectID:    uuid.New(),
			BookingDate:  date("2025-01-01"),
			FinalValue:   dec(finalValue),
			Status:       status,
		}))
	}
	mk(model.BookingCompleted, "1000000")
	mk(model.BookingCompleted, "500000")
	mk(model.BookingPaymentInProgress, "750000")
	mk(model.BookingCancelled, "250000")

	perf, err := svc.Performance(context.Background(), rmID)
	require.NoError(t, err)
	assert.Equal(t, 2, perf.ClosedBookings)
	assert.True(t, perf.TotalRevenue.Equal(dec("1500000")), "got %s", perf.TotalRevenue)
	assert.Len(t, perf.ActiveBookings, 1)
}

func TestRMDeactivate(t *testing.T) {
	rms := newStubRMRepo()
	svc := NewRMService(rms, newStubBookingRepo())

	created, err := svc.Create(context.Background(), dto.SaveRMRequest{RMName: "Rahul Sharma"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), uuid.MustParse(created.ID)))

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
