package handler

import (
	"context"
	"net/http"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type BookingsHandler struct {
	svc      service.BookingService
	payments service.PaymentService
	plots    service.PlotService
	rdb      *redis.Client
}

func NewBookingsHandler(svc service.BookingService, payments service.PaymentService, plots service.PlotService, rdb *redis.Client) *BookingsHandler {
	return &BookingsHandler{svc: svc, payments: payments, plots: plots, rdb: rdb}
}

// invalidatePlotLookup drops the public availability cache entry for a plot
// whose status just changed through the booking workflow. Best effort.
func (h *BookingsHandler) invalidatePlotLookup(ctx context.Context, plotID string) {
	id, err := uuid.Parse(plotID)
	if err != nil {
		return
	}
	plot, err := h.plots.Get(ctx, id)
	if err != nil {
		return
	}
	_ = h.rdb.Del(ctx, "plot_lookup:"+plot.ProjectID+":"+plot.PlotNumber).Err()
}

// Create godoc
// @Summary      Create a draft booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveBookingRequest true "Booking draft"
// @Success      201  {object} dto.BookingResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/bookings [post]
func (h *BookingsHandler) Create(c *gin.Context) {
	var req dto.SaveBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update a draft booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Booking UUID"
// @Param        body body dto.SaveBookingRequest true "Booking draft"
// @Success      200  {object} dto.BookingResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/bookings/{id} [put]
func (h *BookingsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SaveBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get a booking with its payment schedule
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      200 {object} dto.BookingResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/bookings/{id} [get]
func (h *BookingsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query string false "Filter by project"
// @Param        customer_id query string false "Filter by customer"
// @Param        rm_id       query string false "Filter by assigned RM"
// @Param        status      query string false "Lifecycle status | all"
// @Param        from_date   query string false "YYYY-MM-DD"
// @Param        to_date     query string false "YYYY-MM-DD"
// @Param        page        query int    false "Page (default 1)"
// @Param        limit       query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.BookingListResponse
// @Router       /v1/bookings [get]
func (h *BookingsHandler) List(c *gin.Context) {
	var filter dto.BookingFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary      Submit a draft booking
// @Description  Locks the plot, generates the payment schedule from the plan and moves the booking to Booked. Irreversible except by cancellation.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      200 {object} dto.BookingResponse
// @Failure      400 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/bookings/{id}/submit [post]
func (h *BookingsHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.invalidatePlotLookup(c.Request.Context(), resp.PlotID)
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Unpaid schedule rows flip to Cancelled, paid rows keep their history, and the plot returns to Available.
// @Tags         bookings
// @Accept       json
// @Security     BearerAuth
// @Param        id   path string true "Booking UUID"
// @Param        body body dto.CancelBookingRequest true "Cancellation reason"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/bookings/{id} [delete]
func (h *BookingsHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.CancelBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), id, req.Reason); err != nil {
		writeServiceError(c, err)
		return
	}
	if b, err := h.svc.Get(c.Request.Context(), id); err == nil {
		h.invalidatePlotLookup(c.Request.Context(), b.PlotID)
	}
	c.Status(http.StatusNoContent)
}

// ReceivePayment godoc
// @Summary      Record a payment against a schedule row
// @Description  Creates an immutable payment entry, updates the row balance and re-derives the booking status atomically.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Booking UUID"
// @Param        row_id path string true "Schedule row UUID"
// @Param        body   body dto.ReceivePaymentRequest true "Payment details"
// @Success      201  {object} dto.PaymentEntryResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/bookings/{id}/schedule/{row_id}/payments [post]
func (h *BookingsHandler) ReceivePayment(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid booking ID"))
		return
	}
	rowID, err := uuid.Parse(c.Param("row_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid schedule row ID"))
		return
	}
	var req dto.ReceivePaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.payments.ReceivePayment(c.Request.Context(), bookingID, rowID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPayments godoc
// @Summary      List payment entries for a booking
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      200 {array} dto.PaymentEntryResponse
// @Router       /v1/bookings/{id}/payments [get]
func (h *BookingsHandler) ListPayments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.payments.ListPayments(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshStatus godoc
// @Summary      Re-derive a booking's status from its schedule
// @Description  Idempotent; used after out-of-band schedule corrections.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      200 {object} map[string]string
// @Router       /v1/bookings/{id}/refresh-status [post]
func (h *BookingsHandler) RefreshStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	status, err := h.payments.RefreshStatus(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GenerateInvoice godoc
// @Summary      Raise an invoice for a submitted booking (accounts/admin)
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking UUID"
// @Success      201 {object} dto.InvoiceResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/bookings/{id}/invoice [post]
func (h *BookingsHandler) GenerateInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GenerateInvoice(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
