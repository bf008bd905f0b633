package query

import (
	"sort"

	"lifelog/src/domain"
)

// FallbackCategoryName is shown for todos whose category cannot be found
const FallbackCategoryName = "Uncategorized"

// CategoryView is the display form of a todo's category
type CategoryView struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	ColorType domain.ColorType `json:"colorType,omitempty"`
	Color     string           `json:"color"`
	Removed   bool             `json:"removed"`
	Fallback  bool             `json:"fallback"`
}

// CategoryIndex resolves category ids, including removed categories
type CategoryIndex struct {
	byID map[string]domain.Category
}

// NewCategoryIndex indexes every category by id
func NewCategoryIndex(categories []domain.Category) CategoryIndex {
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return CategoryIndex{byID: byID}
}

// Lookup returns the category for id
func (idx CategoryIndex) Lookup(id string) (domain.Category, bool) {
	c, ok := idx.byID[id]
	return c, ok
}

// CategoryFor joins a todo with its category
func (idx CategoryIndex) CategoryFor(todo domain.Todo) (domain.Category, bool) {
	return idx.Lookup(todo.CategoryID)
}

// ViewFor never fails: a missing or removed category yields the neutral
// fallback view. The id is kept so the todo can still be edited.
func (idx CategoryIndex) ViewFor(todo domain.Todo) CategoryView {
	c, ok := idx.CategoryFor(todo)
	if !ok || c.Removed {
		return CategoryView{
			ID:       todo.CategoryID,
			Name:     FallbackCategoryName,
			Color:    domain.FallbackColorHex,
			Removed:  ok,
			Fallback: true,
		}
	}
	return CategoryView{
		ID:        c.ID,
		Name:      c.Name,
		ColorType: c.ColorType,
		Color:     c.ColorType.Hex(),
	}
}

// SelectableCategories returns the categories offered for new todos:
// not removed, ordered by orderNo
func SelectableCategories(categories []domain.Category) []domain.Category {
	result := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if !c.Removed {
			result = append(result, c)
		}
	}
	SortCategories(result)
	return result
}

// SortCategories orders by orderNo, then name
func SortCategories(categories []domain.Category) {
	sort.SliceStable(categories, func(a, b int) bool {
		if categories[a].OrderNo != categories[b].OrderNo {
			return categories[a].OrderNo < categories[b].OrderNo
		}
		return categories[a].Name < categories[b].Name
	})
}

// CategoriesOn returns the distinct categories used by the todos of d, in order
// of first appearance. Unknown ids are returned as fallback views.
func CategoriesOn(todos []domain.Todo, categories []domain.Category, d domain.Date) []CategoryView {
	idx := NewCategoryIndex(categories)
	seen := make(map[string]bool)
	result := make([]CategoryView, 0)
	for _, t := range TodosOn(todos, d) {
		if seen[t.CategoryID] {
			continue
		}
		seen[t.CategoryID] = true
		result = append(result, idx.ViewFor(t))
	}
	return result
}
