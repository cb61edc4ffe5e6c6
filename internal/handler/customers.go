package handler

import (
	"net/http"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

// Create godoc
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveCustomerRequest true "Customer"
// @Success      201  {object} dto.CustomerResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/customers [post]
func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.SaveCustomerRequest
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
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Customer UUID"
// @Param        body body dto.SaveCustomerRequest true "Customer"
// @Success      200  {object} dto.CustomerResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/customers/{id} [put]
func (h *CustomersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SaveCustomerRequest
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
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer UUID"
// @Success      200 {object} dto.CustomerResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/customers/{id} [get]
func (h *CustomersHandler) Get(c *gin.Context) {
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

// Summary godoc
// @Summary      Customer 360 view
// @Description  The customer with their bookings, receipts, documents and portfolio totals in one call.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Customer UUID"
// @Success      200 {object} dto.CustomerSummaryResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/customers/{id}/summary [get]
func (h *CustomersHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Name substring filter"
// @Success      200 {array} dto.CustomerResponse
// @Router       /v1/customers [get]
func (h *CustomersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
