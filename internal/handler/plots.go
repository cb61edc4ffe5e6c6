package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/middleware"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const plotLookupCacheTTL = 5 * time.Minute

type PlotsHandler struct {
	svc service.PlotService
	rdb *redis.Client
}

func NewPlotsHandler(svc service.PlotService, rdb *redis.Client) *PlotsHandler {
	return &PlotsHandler{svc: svc, rdb: rdb}
}

func callerRoles(c *gin.Context) []string {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	return []string{claims.Role}
}

// Create godoc
// @Summary      Create a plot
// @Tags         plots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SavePlotRequest true "Plot"
// @Success      201  {object} dto.PlotResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/plots [post]
func (h *PlotsHandler) Create(c *gin.Context) {
	var req dto.SavePlotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req, callerRoles(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update a plot
// @Description  Manual status changes are admin-only; plot status otherwise moves through the booking workflow.
// @Tags         plots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Plot UUID"
// @Param        body body dto.SavePlotRequest true "Plot"
// @Success      200  {object} dto.PlotResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/plots/{id} [put]
func (h *PlotsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SavePlotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req, callerRoles(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get a plot
// @Tags         plots
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Plot UUID"
// @Success      200 {object} dto.PlotResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/plots/{id} [get]
func (h *PlotsHandler) Get(c *gin.Context) {
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
// @Summary      List plots
// @Tags         plots
// @Produce      json
// @Security     BearerAuth
// @Param        project_id query string false "Filter by project"
// @Param        status     query string false "Available | Booked | Registered | On Hold | all"
// @Param        sector     query string false "Filter by sector"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.PlotListResponse
// @Router       /v1/plots [get]
func (h *PlotsHandler) List(c *gin.Context) {
	var filter dto.PlotFilter
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

// Lookup godoc
// @Summary      Public plot availability check (no authentication)
// @Description  Read-only lookup keyed by project and plot number, cached briefly in Redis.
// @Tags         plots
// @Produce      json
// @Param        project_id  query string true "Project UUID"
// @Param        plot_number query string true "Plot number"
// @Success      200 {object} dto.PlotLookupResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/plot-lookup [get]
func (h *PlotsHandler) Lookup(c *gin.Context) {
	projectID, err := uuid.Parse(c.Query("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid project_id"))
		return
	}
	plotNumber := c.Query("plot_number")
	if plotNumber == "" {
		c.JSON(http.StatusBadRequest, apierror.New("plot_number is required"))
		return
	}

	ctx := c.Request.Context()
	cacheKey := "plot_lookup:" + projectID.String() + ":" + plotNumber

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PlotLookupResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.Lookup(ctx, projectID, plotNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Plot not found"))
		return
	}

	// Populate cache — best effort, ignore errors. Short TTL: a plot can be
	// booked at any moment and the public page tolerates brief staleness.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, plotLookupCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
