package handler

import (
	"net/http"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RMsHandler struct{ svc service.RMService }

func NewRMsHandler(svc service.RMService) *RMsHandler { return &RMsHandler{svc: svc} }

// Create godoc
// @Summary      Create a relationship manager
// @Description  RM code is auto-generated from name initials when omitted.
// @Tags         relationship-managers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveRMRequest true "Relationship manager"
// @Success      201  {object} dto.RMResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/relationship-managers [post]
func (h *RMsHandler) Create(c *gin.Context) {
	var req dto.SaveRMRequest
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
// @Summary      Update a relationship manager
// @Tags         relationship-managers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "RM UUID"
// @Param        body body dto.SaveRMRequest true "Relationship manager"
// @Success      200  {object} dto.RMResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/relationship-managers/{id} [put]
func (h *RMsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SaveRMRequest
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
// @Summary      Get a relationship manager
// @Tags         relationship-managers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "RM UUID"
// @Success      200 {object} dto.RMResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/relationship-managers/{id} [get]
func (h *RMsHandler) Get(c *gin.Context) {
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
// @Summary      List relationship managers
// @Tags         relationship-managers
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include deactivated RMs"
// @Success      200 {array} dto.RMResponse
// @Router       /v1/relationship-managers [get]
func (h *RMsHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate a relationship manager
// @Tags         relationship-managers
// @Security     BearerAuth
// @Param        id path string true "RM UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/relationship-managers/{id} [delete]
func (h *RMsHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Performance godoc
// @Summary      RM performance dashboard
// @Tags         relationship-managers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "RM UUID"
// @Success      200 {object} dto.RMPerformanceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/relationship-managers/{id}/performance [get]
func (h *RMsHandler) Performance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Performance(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
