package handler

import (
	"net/http"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectsHandler struct{ svc service.ProjectService }

func NewProjectsHandler(svc service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{svc: svc}
}

// Create godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveProjectRequest true "Project"
// @Success      201  {object} dto.ProjectResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/projects [post]
func (h *ProjectsHandler) Create(c *gin.Context) {
	var req dto.SaveProjectRequest
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
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Project UUID"
// @Param        body body dto.SaveProjectRequest true "Project"
// @Success      200  {object} dto.ProjectResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/projects/{id} [put]
func (h *ProjectsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SaveProjectRequest
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
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project UUID"
// @Success      200 {object} dto.ProjectResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/projects/{id} [get]
func (h *ProjectsHandler) Get(c *gin.Context) {
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
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProjectResponse
// @Router       /v1/projects [get]
func (h *ProjectsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
