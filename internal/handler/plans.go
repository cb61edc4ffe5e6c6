package handler

import (
	"net/http"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlansHandler struct{ svc service.PlanService }

func NewPlansHandler(svc service.PlanService) *PlansHandler { return &PlansHandler{svc: svc} }

// Create godoc
// @Summary      Create a payment plan template
// @Description  Stage percentages must total exactly 100 (±0.01) and at most one stage may be the possession stage.
// @Tags         payment-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SavePlanRequest true "Plan definition"
// @Success      201  {object} dto.PlanResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/payment-plans [post]
func (h *PlansHandler) Create(c *gin.Context) {
	var req dto.SavePlanRequest
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
// @Summary      Update a payment plan template
// @Description  Rejected once any submitted booking references the plan.
// @Tags         payment-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Plan UUID"
// @Param        body body dto.SavePlanRequest true "Plan definition"
// @Success      200  {object} dto.PlanResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/payment-plans/{id} [put]
func (h *PlansHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SavePlanRequest
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
// @Summary      Get a payment plan template
// @Tags         payment-plans
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Plan UUID"
// @Success      200 {object} dto.PlanResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/payment-plans/{id} [get]
func (h *PlansHandler) Get(c *gin.Context) {
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
// @Summary      List payment plan templates
// @Tags         payment-plans
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include deactivated plans"
// @Success      200 {array} dto.PlanResponse
// @Router       /v1/payment-plans [get]
func (h *PlansHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate a payment plan template
// @Tags         payment-plans
// @Security     BearerAuth
// @Param        id path string true "Plan UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/payment-plans/{id} [delete]
func (h *PlansHandler) Deactivate(c *gin.Context) {
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
