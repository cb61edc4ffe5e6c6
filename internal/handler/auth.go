package handler

import (
	"net/http"

	"github.com/Aniket-89/recrm/internal/apierror"
	"github.com/Aniket-89/recrm/internal/dto"
	"github.com/Aniket-89/recrm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Authenticate a user
// @Description  Validates credentials and returns access + refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credentials"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.RefreshRequest true "Refresh token"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apierror.APIError
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary      Create a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateUserRequest true "User"
// @Success      201  {object} dto.UserResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/users [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateUser godoc
// @Summary      Update a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "User UUID"
// @Param        body body dto.UpdateUserRequest true "Fields to update"
// @Success      200  {object} dto.UserResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/users/{id} [put]
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListUsers godoc
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include deactivated users"
// @Success      200 {array} dto.UserResponse
// @Router       /v1/users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.ListUsers(c.Request.Context(), includeInactive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeactivateUser godoc
// @Summary      Deactivate a user (admin)
// @Tags         users
// @Security     BearerAuth
// @Param        id path string true "User UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/users/{id} [delete]
func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeactivateUser(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
