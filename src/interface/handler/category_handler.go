package handler

import (
	"net/http"

	"lifelog/src/domain"
	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryUsecase usecase.CategoryUsecase
	validator       *validator.CustomValidator
	logger          *logrus.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryUsecase usecase.CategoryUsecase, v *validator.CustomValidator, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryUsecase: categoryUsecase,
		validator:       v,
		logger:          logger,
	}
}

// CreateCategory creates a new category at the end of the order
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	category, err := h.categoryUsecase.CreateCategory(c.Request.Context(), usecase.CreateCategoryRequest{
		Name:      validator.NormalizeName(req.Name),
		ColorType: domain.ColorType(req.ColorType),
	})
	if err != nil {
		respondError(c, h.logger, err, "create category")
		return
	}

	h.logger.WithField("category_id", category.ID).Info("カテゴリを作成しました")
	respond(c, http.StatusCreated, category, "category created")
}

// ListCategories lists selectable categories, or all with includeRemoved=true
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var query CategoryListQueryDTO
	if !bindQuery(c, h.validator, h.logger, &query) {
		return
	}

	categories, err := h.categoryUsecase.ListCategories(c.Request.Context(), query.IncludeRemoved)
	if err != nil {
		respondError(c, h.logger, err, "list categories")
		return
	}
	respond(c, http.StatusOK, categories, "")
}

// GetCategory retrieves a category by ID
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	category, err := h.categoryUsecase.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "get category")
		return
	}
	respond(c, http.StatusOK, category, "")
}

// UpdateCategory renames or recolors a category
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}
	var req UpdateCategoryRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	ucReq := usecase.UpdateCategoryRequest{}
	if req.Name != nil {
		name := validator.NormalizeName(*req.Name)
		ucReq.Name = &name
	}
	if req.ColorType != nil {
		colorType := domain.ColorType(*req.ColorType)
		ucReq.ColorType = &colorType
	}

	category, err := h.categoryUsecase.UpdateCategory(c.Request.Context(), id, ucReq)
	if err != nil {
		respondError(c, h.logger, err, "update category")
		return
	}
	respond(c, http.StatusOK, category, "category updated")
}

// RemoveCategory hides a category from selection; its todos keep referencing it
func (h *CategoryHandler) RemoveCategory(c *gin.Context) {
	id, ok := pathID(c, h.validator)
	if !ok {
		return
	}

	if err := h.categoryUsecase.RemoveCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "remove category")
		return
	}

	h.logger.WithField("category_id", id).Info("カテゴリを削除済みにしました")
	respond(c, http.StatusOK, nil, "category removed")
}

// ReorderCategories stores the drag-and-drop order
func (h *CategoryHandler) ReorderCategories(c *gin.Context) {
	var req ReorderCategoriesRequestDTO
	if !bindJSON(c, h.validator, h.logger, &req) {
		return
	}

	categories, err := h.categoryUsecase.ReorderCategories(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, h.logger, err, "reorder categories")
		return
	}
	respond(c, http.StatusOK, categories, "categories reordered")
}
