package handler

import (
	"errors"
	"net/http"

	"lifelog/src/domain"
	"lifelog/src/service"
	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Response is the envelope of every API answer
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// エラーコード
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeDuplicate    = "DATA_ALREADY_EXISTS"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeTooMany      = "TOO_MANY_ATTEMPTS"
	CodeInternal     = "INTERNAL_ERROR"
)

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{Success: true, Data: data, Message: message})
}

func respondFail(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, Response{Success: false, Error: code, Message: message, Details: details})
}

// statusFor maps use case and service errors to an HTTP status and code
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, service.ErrInvalidNewPassword):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict, CodeDuplicate
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests, CodeTooMany
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrPasswordNotConfigured):
		return http.StatusUnauthorized, CodeUnauthorized
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// respondError logs err and answers with the mapped status.
// Internal errors are not echoed to the client.
func respondError(c *gin.Context, logger *logrus.Logger, err error, action string) {
	status, code := statusFor(err)
	entry := logger.WithError(err).WithField("action", action)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		entry.Error("リクエストの処理に失敗")
		message = "internal server error"
	} else {
		entry.Warn("リクエストを拒否しました")
	}
	_ = c.Error(err)
	respondFail(c, status, code, message, nil)
}

// bindJSON decodes the body into dst and runs the struct validation
func bindJSON(c *gin.Context, v *validator.CustomValidator, logger *logrus.Logger, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.WithError(err).Warn("リクエストのバインドに失敗")
		respondFail(c, http.StatusBadRequest, CodeValidation, "invalid request format", nil)
		return false
	}
	return validate(c, v, dst)
}

// bindQuery decodes query parameters into dst and validates them
func bindQuery(c *gin.Context, v *validator.CustomValidator, logger *logrus.Logger, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		logger.WithError(err).Warn("クエリパラメータのバインドに失敗")
		respondFail(c, http.StatusBadRequest, CodeValidation, "invalid query parameters", nil)
		return false
	}
	return validate(c, v, dst)
}

func validate(c *gin.Context, v *validator.CustomValidator, dst interface{}) bool {
	if err := v.Validate(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			respondFail(c, http.StatusBadRequest, CodeValidation, "validation failed", ve.Errors)
			return false
		}
		respondFail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return false
	}
	return true
}

// pathID reads and validates the :id path parameter
func pathID(c *gin.Context, v *validator.CustomValidator) (string, bool) {
	id, err := v.ValidateID(c.Param("id"))
	if err != nil {
		respondFail(c, http.StatusBadRequest, CodeValidation, err.Error(), nil)
		return "", false
	}
	return id, true
}

// parseDate converts a validated YYYY-MM-DD field; empty yields the zero date
func parseDate(s string) domain.Date {
	if s == "" {
		return domain.Date{}
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}
	}
	return d
}
