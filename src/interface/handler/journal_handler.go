package handler

import (
	"net/http"

	"lifelog/src/domain"
	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// JournalHandler handles HTTP requests for journal operations
type JournalHandler struct {
	journalUsecase usecase.JournalUsecase
	validator      *validator.CustomValidator
	logger         *logrus.Logger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalUsecase usecase.JournalUsecase, v *validator.CustomValidator, logger *logrus.Logger) *JournalHandler {
	return &JournalHandler{
		journalUsecase: journalUsecase,
		validator:      v,
		logger:         logger,
	}
}

// CreateJournal creates the journal of a date
func (h *JournalHandler) CreateJournal(c *gin.Context) {
	var req CreateJournalRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	journal, err := h.journalUsecase.CreateJournal(c.Request.Context(), usecase.CreateJournalRequest{
		Date:           parseDate(req.Date),
		WeatherComment: toWeatherComment(req.WeatherComment),
		FeelingComment: toFeelingComment(req.FeelingComment),
		Contents:       req.Contents,
		ImageIDs:       req.ImageIDs,
		Memo:           req.Memo,
		Saved:          req.Saved,
		Locked:         req.Locked,
	})
	if err != nil {
		respondError(c, h.logger, err, "create journal")
		return
	}

	h.logger.WithFields(logrus.Fields{"journal_id": journal.ID, "date": journal.Date.String()}).Info("日記を作成しました")
	respond(c, http.StatusCreated, journal, "journal created")
}

// GetJournal retrieves a journal by ID
func (h *JournalHandler) GetJournal(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	journal, err := h.journalUsecase.GetJournal(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "get journal")
		return
	}
	respond(c, http.StatusOK, journal, "")
}

// UpdateJournal updates an existing journal
func (h *JournalHandler) UpdateJournal(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}
	var req UpdateJournalRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	ucReq := usecase.UpdateJournalRequest{
		WeatherComment: toWeatherComment(req.WeatherComment),
		ClearWeather:   req.ClearWeather,
		FeelingComment: toFeelingComment(req.FeelingComment),
		ClearFeeling:   req.ClearFeeling,
		Contents:       req.Contents,
		ImageIDs:       req.ImageIDs,
		Memo:           req.Memo,
		Saved:          req.Saved,
		Locked:         req.Locked,
	}
	if req.Date != nil {
		d := parseDate(*req.Date)
		ucReq.Date = &d
	}

	journal, err := h.journalUsecase.UpdateJournal(c.Request.Context(), id, ucReq)
	if err != nil {
		respondError(c, h.logger, err, "update journal")
		return
	}

	h.logger.WithField("journal_id", id).Info("日記を更新しました")
	respond(c, http.StatusOK, journal, "journal updated")
}

// LockJournal sets or clears the private flag
func (h *JournalHandler) LockJournal(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}
	var req LockJournalRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	journal, err := h.journalUsecase.SetLocked(c.Request.Context(), id, *req.Locked)
	if err != nil {
		respondError(c, h.logger, err, "lock journal")
		return
	}
	respond(c, http.StatusOK, journal, "journal lock changed")
}

// ChangeImages replaces the image references of a journal
func (h *JournalHandler) ChangeImages(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}
	var req ChangeImagesRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	journal, err := h.journalUsecase.ChangeImages(c.Request.Context(), id, req.ImageIDs)
	if err != nil {
		respondError(c, h.logger, err, "change journal images")
		return
	}
	respond(c, http.StatusOK, journal, "journal images changed")
}

// SaveJournal marks a draft journal as saved
func (h *JournalHandler) SaveJournal(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	journal, err := h.journalUsecase.SaveJournal(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "save journal")
		return
	}
	respond(c, http.StatusOK, journal, "journal saved")
}

// DeleteJournal deletes a journal
func (h *JournalHandler) DeleteJournal(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	if err := h.journalUsecase.DeleteJournal(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "delete journal")
		return
	}

	h.logger.WithField("journal_id", id).Info("日記を削除しました")
	respond(c, http.StatusOK, nil, "journal deleted")
}

// FindJournals returns a handler listing journals of the scope around {date}
func (h *JournalHandler) FindJournals(scope domain.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DateRequestDTO
		if !bindJSON(c, h.validator, h.logger, &req) {
			return
		}

		journals, err := h.journalUsecase.FindJournals(c.Request.Context(), scope, parseDate(req.Date))
		if err != nil {
			respondError(c, h.logger, err, "find journals")
			return
		}
		respond(c, http.StatusOK, journals, "")
	}
}

func toWeatherComment(dto *WeatherCommentDTO) *domain.WeatherComment {
	if dto == nil {
		return nil
	}
	return &domain.WeatherComment{Weather: domain.Weather(dto.Weather), Comment: dto.Comment}
}

func toFeelingComment(dto *FeelingCommentDTO) *domain.FeelingComment {
	if dto == nil {
		return nil
	}
	return &domain.FeelingComment{Feeling: domain.Feeling(dto.Feeling), Comment: dto.Comment}
}
