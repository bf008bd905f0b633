package handler

import (
	"net/http"
	"time"

	"lifelog/src/domain"
	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TodoHandler handles HTTP requests for todo operations
type TodoHandler struct {
	todoUsecase usecase.TodoUsecase
	validator   *validator.CustomValidator
	location    *time.Location
	logger      *logrus.Logger
}

// NewTodoHandler creates a new todo handler. loc converts RFC3339 input into wall-clock time.
func NewTodoHandler(todoUsecase usecase.TodoUsecase, v *validator.CustomValidator, loc *time.Location, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{
		todoUsecase: todoUsecase,
		validator:   v,
		location:    loc,
		logger:      logger,
	}
}

// CreateTodo creates a new todo
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	var req CreateTodoRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	start, ok := h.parseDateTime(c, "startDateTime", req.StartDateTime)
	if !ok {
		return
	}
	var end time.Time
	if req.EndDateTime != "" {
		if end, ok = h.parseDateTime(c, "endDateTime", req.EndDateTime); !ok {
			return
		}
	}

	todo, err := h.todoUsecase.CreateTodo(c.Request.Context(), usecase.CreateTodoRequest{
		CategoryID:    req.CategoryID,
		Contents:      req.Contents,
		Memo:          req.Memo,
		IsPeriod:      req.IsPeriod,
		StartDateTime: start,
		EndDateTime:   end,
		Status:        domain.Status(req.Status),
	})
	if err != nil {
		respondError(c, h.logger, err, "create todo")
		return
	}

	h.logger.WithField("todo_id", todo.ID).Info("TODOを作成しました")
	respond(c, http.StatusCreated, todo, "todo created")
}

// GetTodo retrieves a todo by ID
func (h *TodoHandler) GetTodo(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	todo, err := h.todoUsecase.GetTodo(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "get todo")
		return
	}
	respond(c, http.StatusOK, todo, "")
}

// UpdateTodo updates an existing todo
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}
	var req UpdateTodoRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	ucReq := usecase.UpdateTodoRequest{
		CategoryID: req.CategoryID,
		Contents:   req.Contents,
		Memo:       req.Memo,
		IsPeriod:   req.IsPeriod,
	}
	if req.StartDateTime != nil {
		start, ok := h.parseDateTime(c, "startDateTime", *req.StartDateTime)
		if !ok {
			return
		}
		ucReq.StartDateTime = &start
	}
	if req.EndDateTime != nil {
		end, ok := h.parseDateTime(c, "endDateTime", *req.EndDateTime)
		if !ok {
			return
		}
		ucReq.EndDateTime = &end
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		ucReq.Status = &status
	}

	todo, err := h.todoUsecase.UpdateTodo(c.Request.Context(), id, ucReq)
	if err != nil {
		respondError(c, h.logger, err, "update todo")
		return
	}

	h.logger.WithField("todo_id", id).Info("TODOを更新しました")
	respond(c, http.StatusOK, todo, "todo updated")
}

// ChangeStatus changes only the status of a todo
func (h *TodoHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}
	var req ChangeStatusRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	todo, err := h.todoUsecase.ChangeStatus(c.Request.Context(), id, domain.Status(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "change todo status")
		return
	}
	respond(c, http.StatusOK, todo, "todo status changed")
}

// CopyTodo copies a todo to another date
func (h *TodoHandler) CopyTodo(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}
	var req DateRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	todo, err := h.todoUsecase.CopyTodo(c.Request.Context(), id, parseDate(req.Date))
	if err != nil {
		respondError(c, h.logger, err, "copy todo")
		return
	}

	h.logger.WithFields(logrus.Fields{"source_id": id, "todo_id": todo.ID}).Info("TODOをコピーしました")
	respond(c, http.StatusCreated, todo, "todo copied")
}

// DeleteTodo deletes a todo
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	if err := h.todoUsecase.DeleteTodo(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "delete todo")
		return
	}

	h.logger.WithField("todo_id", id).Info("TODOを削除しました")
	respond(c, http.StatusOK, nil, "todo deleted")
}

// FindTodos returns a handler listing todos of the scope around {date}
func (h *TodoHandler) FindTodos(scope domain.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DateRequestDTO
		if !bindJSON(c, h.validator, h.logger, &req) {
			return
		}

		todos, err := h.todoUsecase.FindTodos(c.Request.Context(), scope, parseDate(req.Date))
		if err != nil {
			respondError(c, h.logger, err, "find todos")
			return
		}
		respond(c, http.StatusOK, todos, "")
	}
}

func (h *TodoHandler) parseDateTime(c *gin.Context, field, value string) (time.Time, bool) {
	t, err := domain.ParseDateTime(value, h.location)
	if err != nil {
		respondFail(c, http.StatusBadRequest, CodeValidation, field+": "+err.Error(), nil)
		return time.Time{}, false
	}
	return t, true
}
