package handler

import (
	"net/http"
	"strconv"
	"time"

	"lifelog/src/middleware"
	"lifelog/src/service"
	"lifelog/src/store"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles login and password changes of the owner
type AuthHandler struct {
	authService service.AuthService
	state       *store.AppState
	validator   *validator.CustomValidator
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, state *store.AppState, v *validator.CustomValidator, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		state:       state,
		validator:   v,
		logger:      logger,
	}
}

// Login verifies the password and issues an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	result, status, err := h.authService.Login(c.Request.Context(), req.Password, c.ClientIP())
	c.Header("X-Attempts-Remaining", strconv.Itoa(status.Remaining))
	if err != nil {
		middleware.SetRetryAfter(c, status)
		respondError(c, h.logger, err, "login")
		return
	}

	respond(c, http.StatusOK, LoginResponseDTO{
		Token:             result.Token,
		ExpiresAt:         result.ExpiresAt.Format(time.RFC3339),
		AttemptsRemaining: status.Remaining,
	}, "login succeeded")
}

// Logout drops the cached snapshot and resets the cursor
func (h *AuthHandler) Logout(c *gin.Context) {
	h.state.Reset()
	h.logger.Info("ログアウトしました")
	respond(c, http.StatusOK, nil, "logged out")
}

// ChangePassword replaces the owner password after checking the current one
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, h.logger, err, "change password")
		return
	}
	respond(c, http.StatusOK, nil, "password changed")
}
