package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memorial-backend/internal/domains/user/model"
	"memorial-backend/internal/domains/user/service"
	"memorial-backend/internal/shared/middleware"
	"memorial-backend/internal/shared/response"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a new account
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login authenticates and issues a session token
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Me returns the authenticated account
// GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), middleware.CallerEmail(c))
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// DeleteAccount removes the account and every profile it owns
// DELETE /api/v1/users/me
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	result, err := h.userService.DeleteAccount(c.Request.Context(), middleware.CallerEmail(c))
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func respondUserError(c *gin.Context, err error) {
	if userErr, ok := err.(*model.UserError); ok {
		c.JSON(userErrorStatus(userErr.Code), gin.H{
			"success": false,
			"error": gin.H{
				"code":    userErr.Code,
				"message": userErr.Message,
			},
		})
		return
	}
	response.InternalServerError(c, "Internal server error")
}

func userErrorStatus(code string) int {
	switch code {
	case model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeEmailTaken:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
