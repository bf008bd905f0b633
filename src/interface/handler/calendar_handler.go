package handler

import (
	"net/http"

	"lifelog/src/domain"
	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CalendarHandler serves the month grid, the day detail and the date cursor
type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
	validator       *validator.CustomValidator
	logger          *logrus.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase, v *validator.CustomValidator, logger *logrus.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarUsecase: calendarUsecase,
		validator:       v,
		logger:          logger,
	}
}

// GetMonth renders ?month=YYYY-MM, or the month shown by the cursor
func (h *CalendarHandler) GetMonth(c *gin.Context) {
	var query CalendarQueryDTO
	if !bindQuery(c, h.validator, h.logger, &query) {
		return
	}

	var (
		view *usecase.MonthView
		err  error
	)
	if query.Month == "" {
		view, err = h.calendarUsecase.DisplayedMonth(c.Request.Context(), query.Padding)
	} else {
		month, parseErr := domain.ParseMonth(query.Month)
		if parseErr != nil {
			respondFail(c, http.StatusBadRequest, CodeValidation, parseErr.Error(), nil)
			return
		}
		view, err = h.calendarUsecase.Month(c.Request.Context(), month, query.Padding)
	}
	if err != nil {
		respondError(c, h.logger, err, "get calendar month")
		return
	}
	respond(c, http.StatusOK, view, "")
}

// GetDay returns everything recorded on :date
func (h *CalendarHandler) GetDay(c *gin.Context) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		respondFail(c, http.StatusBadRequest, CodeValidation, usecase.ErrInvalidDate.Error(), nil)
		return
	}

	view, err := h.calendarUsecase.Day(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, err, "get calendar day")
		return
	}
	respond(c, http.StatusOK, view, "")
}

// GetCursor returns the displayed month and the selected date
func (h *CalendarHandler) GetCursor(c *gin.Context) {
	respond(c, http.StatusOK, h.calendarUsecase.Cursor(), "")
}

// ShiftMonth moves the displayed month by {offset}
func (h *CalendarHandler) ShiftMonth(c *gin.Context) {
	var req CursorMonthRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	state, err := h.calendarUsecase.ShiftMonth(*req.Offset)
	if err != nil {
		respondError(c, h.logger, err, "shift month")
		return
	}
	respond(c, http.StatusOK, state, "")
}

// Select selects {date}. A date outside the service window is ignored and
// reported with accepted=false.
func (h *CalendarHandler) Select(c *gin.Context) {
	var req DateRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	result := h.calendarUsecase.Select(parseDate(req.Date))
	if !result.Accepted {
		h.logger.WithField("date", req.Date).Debug("選択できない日付のため無視しました")
	}
	respond(c, http.StatusOK, result, "")
}
