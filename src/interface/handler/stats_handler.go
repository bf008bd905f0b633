package handler

import (
	"net/http"

	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler serves journal and todo statistics
type StatsHandler struct {
	statsUsecase usecase.StatsUsecase
	validator    *validator.CustomValidator
	logger       *logrus.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsUsecase usecase.StatsUsecase, v *validator.CustomValidator, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		statsUsecase: statsUsecase,
		validator:    v,
		logger:       logger,
	}
}

// GetStats returns ?strategy= buckets, or the single ?period= bucket
func (h *StatsHandler) GetStats(c *gin.Context) {
	var query StatsQueryDTO
	if !bindQuery(c, h.validator, h.logger, &query) {
		return
	}

	report, err := h.statsUsecase.GetStats(c.Request.Context(), query.Strategy, query.Period)
	if err != nil {
		respondError(c, h.logger, err, "get stats")
		return
	}
	respond(c, http.StatusOK, report, "")
}
