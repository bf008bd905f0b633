package handler

import (
	"net/http"

	"lifelog/src/domain"
	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProfileHandler handles HTTP requests for the owner profile
type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
	logger         *logrus.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase usecase.ProfileUsecase, v *validator.CustomValidator, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      v,
		logger:         logger,
	}
}

// GetProfile returns the profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUsecase.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "get profile")
		return
	}
	respond(c, http.StatusOK, profile, "")
}

// SaveProfile creates or replaces the personal fields of the profile
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	profile, err := h.profileUsecase.SaveProfile(c.Request.Context(), usecase.SaveProfileRequest{
		Name:        validator.NormalizeName(req.Name),
		BirthDate:   parseDate(req.BirthDate),
		PhoneNumber: req.PhoneNumber,
		Remark:      req.Remark,
	})
	if err != nil {
		respondError(c, h.logger, err, "save profile")
		return
	}

	h.logger.Info("プロフィールを保存しました")
	respond(c, http.StatusOK, profile, "profile saved")
}

// ChangeSettings changes notification time, dark mode or font
func (h *ProfileHandler) ChangeSettings(c *gin.Context) {
	var req ChangeSettingsRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	ucReq := usecase.ChangeSettingsRequest{
		NotificationTime: req.NotificationTime,
		IsDark:           req.IsDark,
	}
	if req.FontType != nil {
		font := domain.FontType(*req.FontType)
		ucReq.FontType = &font
	}

	profile, err := h.profileUsecase.ChangeSettings(c.Request.Context(), ucReq)
	if err != nil {
		respondError(c, h.logger, err, "change settings")
		return
	}
	respond(c, http.StatusOK, profile, "settings changed")
}
