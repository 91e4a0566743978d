package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"librobuddy-backend/internal/domains/user"
	"librobuddy-backend/internal/shared/middleware"
	"librobuddy-backend/internal/shared/response"
	"librobuddy-backend/pkg/logger"
)

// UserHandler handles HTTP requests for the user domain
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /auth/register
// @Summary      Register new customer account
// @Tags         Authentication
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+userDTO.ID.String())
	response.Success(c, http.StatusCreated, userDTO)
}

// Login handles POST /auth/login
// @Summary      Exchange credentials for an access token
// @Tags         Authentication
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			logger.Info("failed login", map[string]interface{}{
				"ip":         c.ClientIP(),
				"request_id": c.GetString(middleware.ContextKeyRequestID),
			})
		}
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// ========================================
// PROFILE
// ========================================

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// ========================================
// ADMIN
// ========================================

// UpdateUserRole handles PUT /admin/users/:id/role
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req user.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.service.UpdateUserRole(c.Request.Context(), userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": userID, "role": req.Role})
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)

	case errors.Is(err, user.ErrInvalidRole):
		response.ErrorResponse(c, http.StatusBadRequest, "AUTH005", err.Error())

	case errors.Is(err, user.ErrInvalidCredentials):
		response.ErrorResponse(c, http.StatusUnauthorized, "AUTH001", err.Error())

	case errors.Is(err, user.ErrUserNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "AUTH006", err.Error())

	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.ErrorResponse(c, http.StatusConflict, "AUTH002", err.Error())

	case errors.Is(err, user.ErrTooManyAttempts):
		response.ErrorResponse(c, http.StatusTooManyRequests, "AUTH003", err.Error())

	default:
		logger.Error("user handler: internal error", err)
		response.InternalServerError(c, "Internal server error")
	}
}
