package handler

import (
	"net/http"

	"lifelog/src/domain"
	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AnniversaryHandler handles HTTP requests for anniversary operations
type AnniversaryHandler struct {
	anniversaryUsecase usecase.AnniversaryUsecase
	validator          *validator.CustomValidator
	logger             *logrus.Logger
}

// NewAnniversaryHandler creates a new anniversary handler
func NewAnniversaryHandler(anniversaryUsecase usecase.AnniversaryUsecase, v *validator.CustomValidator, logger *logrus.Logger) *AnniversaryHandler {
	return &AnniversaryHandler{
		anniversaryUsecase: anniversaryUsecase,
		validator:          v,
		logger:             logger,
	}
}

// CreateAnniversary creates a new anniversary
func (h *AnniversaryHandler) CreateAnniversary(c *gin.Context) {
	var req CreateAnniversaryRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	anniversary, err := h.anniversaryUsecase.CreateAnniversary(c.Request.Context(), usecase.CreateAnniversaryRequest{
		DateType: domain.AnniversaryType(req.DateType),
		Date:     parseDate(req.Date),
		Name:     validator.NormalizeName(req.Name),
		Weight:   domain.AnniversaryWeight(req.Weight),
	})
	if err != nil {
		respondError(c, h.logger, err, "create anniversary")
		return
	}

	h.logger.WithField("anniversary_id", anniversary.ID).Info("記念日を作成しました")
	respond(c, http.StatusCreated, anniversary, "anniversary created")
}

// GetAnniversary retrieves an anniversary by ID
func (h *AnniversaryHandler) GetAnniversary(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	anniversary, err := h.anniversaryUsecase.GetAnniversary(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "get anniversary")
		return
	}
	respond(c, http.StatusOK, anniversary, "")
}

// UpdateAnniversary updates an existing anniversary
func (h *AnniversaryHandler) UpdateAnniversary(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}
	var req UpdateAnniversaryRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	ucReq := usecase.UpdateAnniversaryRequest{}
	if req.DateType != nil {
		t := domain.AnniversaryType(*req.DateType)
		ucReq.DateType = &t
	}
	if req.Date != nil {
		d := parseDate(*req.Date)
		ucReq.Date = &d
	}
	if req.Name != nil {
		name := validator.NormalizeName(*req.Name)
		ucReq.Name = &name
	}
	if req.Weight != nil {
		w := domain.AnniversaryWeight(*req.Weight)
		ucReq.Weight = &w
	}

	anniversary, err := h.anniversaryUsecase.UpdateAnniversary(c.Request.Context(), id, ucReq)
	if err != nil {
		respondError(c, h.logger, err, "update anniversary")
		return
	}
	respond(c, http.StatusOK, anniversary, "anniversary updated")
}

// DeleteAnniversary deletes an anniversary
func (h *AnniversaryHandler) DeleteAnniversary(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	if err := h.anniversaryUsecase.DeleteAnniversary(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "delete anniversary")
		return
	}

	h.logger.WithField("anniversary_id", id).Info("記念日を削除しました")
	respond(c, http.StatusOK, nil, "anniversary deleted")
}

// FindAnniversaries returns a handler listing occurrences in the scope around {date}
func (h *AnniversaryHandler) FindAnniversaries(scope domain.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DateRequestDTO
		if !bindJSON(c, h.validator, h.logger, &req) {
			return
		}

		occurrences, err := h.anniversaryUsecase.FindAnniversaries(c.Request.Context(), scope, parseDate(req.Date))
		if err != nil {
			respondError(c, h.logger, err, "find anniversaries")
			return
		}
		respond(c, http.StatusOK, occurrences, "")
	}
}
