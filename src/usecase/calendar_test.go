package usecase_test

import (
	"context"
	"testing"

	"lifelog/src/domain"
	"lifelog/src/store"
	"lifelog/src/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calendarFixture struct {
	repos    store.Repositories
	state    *store.AppState
	calendar usecase.CalendarUsecase
	todos    usecase.TodoUsecase
	journals usecase.JournalUsecase
	category *domain.Category
}

func newCalendarFixture(t *testing.T, padding bool) calendarFixture {
	t.Helper()
	ctx := context.Background()
	repos := memoryRepos()
	window := fixedWindow()
	state := store.NewAppState(window)
	loader := store.NewLoader(state.Store, repos, quietLogger())

	categories := usecase.NewCategoryUsecase(repos.Categories, state.Store)
	category, err := categories.CreateCategory(ctx, usecase.CreateCategoryRequest{Name: "Work", ColorType: domain.ColorMintGreen})
	require.NoError(t, err)

	return calendarFixture{
		repos:    repos,
		state:    state,
		calendar: usecase.NewCalendarUsecase(loader, state, window, padding),
		todos:    usecase.NewTodoUsecase(repos.Todos, repos.Categories, state.Store),
		journals: usecase.NewJournalUsecase(repos.Journals, state.Store, window),
		category: category,
	}
}

func (f calendarFixture) addTodo(t *testing.T, start string) *domain.Todo {
	t.Helper()
	todo, err := f.todos.CreateTodo(context.Background(), usecase.CreateTodoRequest{
		CategoryID: f.category.ID, Contents: start, StartDateTime: wallClock(start),
	})
	require.NoError(t, err)
	return todo
}

func cellOf(t *testing.T, view *usecase.MonthView, date string) usecase.DayCell {
	t.Helper()
	for _, c := range view.Cells {
		if c.Date.String() == date {
			return c
		}
	}
	t.Fatalf("cell %s not found", date)
	return usecase.DayCell{}
}

func TestCalendarUsecase_Month(t *testing.T) {
	ctx := context.Background()
	f := newCalendarFixture(t, true)

	f.addTodo(t, "2025-07-15T21:00")
	f.addTodo(t, "2025-07-15T09:00")
	f.addTodo(t, "2025-07-15T19:00")
	_, err := f.journals.CreateJournal(ctx, usecase.CreateJournalRequest{
		Date:           domain.MustParseDate("2025-07-15"),
		FeelingComment: &domain.FeelingComment{Feeling: domain.FeelingTired},
	})
	require.NoError(t, err)

	view, err := f.calendar.Month(ctx, domain.MustParseDate("2025-07-20"), nil)
	require.NoError(t, err)

	// 2025年7月1日は火曜日なので2日分のパディング
	assert.Equal(t, "2025-07", view.Month)
	assert.Equal(t, 2, view.Padding)
	assert.Len(t, view.Cells, 33)
	assert.Equal(t, "2025-06-29", view.Cells[0].Date.String())
	assert.False(t, view.Cells[0].InMonth)

	t.Run("TODOは2件まで表示して残りは+1", func(t *testing.T) {
		cell := cellOf(t, view, "2025-07-15")
		require.Len(t, cell.Todos.Shown, 2)
		assert.Equal(t, "2025-07-15T09:00", cell.Todos.Shown[0].Contents)
		assert.Equal(t, "2025-07-15T19:00", cell.Todos.Shown[1].Contents)
		assert.Equal(t, 1, cell.Todos.Overflow)
		assert.Equal(t, "+1", cell.Todos.OverflowLabel())
		assert.Equal(t, domain.ColorMintGreen.Hex(), cell.Todos.Shown[0].Category.Color)
	})

	t.Run("日記と今日の印", func(t *testing.T) {
		cell := cellOf(t, view, "2025-07-15")
		assert.NotEmpty(t, cell.JournalID)
		assert.Equal(t, domain.FeelingTired, cell.Feeling)
		assert.True(t, cell.Today)
		assert.True(t, cell.Selected)
		assert.True(t, cell.Selectable)

		future := cellOf(t, view, "2025-07-16")
		assert.False(t, future.Selectable)
		assert.Empty(t, future.JournalID)
		assert.Zero(t, future.Todos.Total)
	})

	t.Run("クエリでパディングを無効化", func(t *testing.T) {
		off := false
		plain, err := f.calendar.Month(ctx, domain.MustParseDate("2025-07-01"), &off)
		require.NoError(t, err)
		assert.Zero(t, plain.Padding)
		assert.Len(t, plain.Cells, 31)
		assert.Equal(t, "2025-07-01", plain.Cells[0].Date.String())
	})
}

func TestCalendarUsecase_MonthReflectsMutations(t *testing.T) {
	ctx := context.Background()
	f := newCalendarFixture(t, false)

	before, err := f.calendar.Month(ctx, domain.MustParseDate("2025-07-01"), nil)
	require.NoError(t, err)
	assert.Zero(t, cellOf(t, before, "2025-07-10").Todos.Total)

	// 更新が確定した後の読み込みには必ず反映される
	f.addTodo(t, "2025-07-10T08:00")
	after, err := f.calendar.Month(ctx, domain.MustParseDate("2025-07-01"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cellOf(t, after, "2025-07-10").Todos.Total)
	assert.Greater(t, after.Generation, before.Generation)
}

func TestCalendarUsecase_DayWithRemovedCategory(t *testing.T) {
	ctx := context.Background()
	f := newCalendarFixture(t, true)

	f.addTodo(t, "2025-07-14T10:00")
	categories := usecase.NewCategoryUsecase(f.repos.Categories, f.state.Store)
	require.NoError(t, categories.RemoveCategory(ctx, f.category.ID))

	day, err := f.calendar.Day(ctx, domain.MustParseDate("2025-07-14"))
	require.NoError(t, err)
	require.Len(t, day.Todos, 1)
	assert.True(t, day.Todos[0].Category.Fallback)
	assert.True(t, day.Todos[0].Category.Removed)
	assert.Equal(t, domain.FallbackColorHex, day.Todos[0].Category.Color)
	assert.Equal(t, f.category.ID, day.Todos[0].Category.ID)
	require.Len(t, day.Categories, 1)
	assert.Nil(t, day.Journal)

	selectable, err := categories.ListCategories(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, selectable)

	_, err = f.calendar.Day(ctx, domain.Date{})
	assert.ErrorIs(t, err, usecase.ErrInvalidDate)
}

func TestCalendarUsecase_Cursor(t *testing.T) {
	f := newCalendarFixture(t, true)

	state := f.calendar.Cursor()
	assert.Equal(t, today, state.Selected.String())
	assert.Equal(t, "2025-07", state.DisplayedMonth.MonthString())

	t.Run("範囲外の日付は選択されない", func(t *testing.T) {
		for _, d := range []string{"2025-07-16", "2024-12-31"} {
			res := f.calendar.Select(domain.MustParseDate(d))
			assert.False(t, res.Accepted, d)
			assert.Equal(t, today, res.Selected.String())
		}
	})

	t.Run("範囲内の日付を選択すると月も移動する", func(t *testing.T) {
		res := f.calendar.Select(domain.MustParseDate("2025-03-03"))
		assert.True(t, res.Accepted)
		assert.Equal(t, "2025-03-03", res.Selected.String())
		assert.Equal(t, "2025-03", res.DisplayedMonth.MonthString())
	})

	t.Run("月の移動は選択を保つ", func(t *testing.T) {
		state, err := f.calendar.ShiftMonth(2)
		require.NoError(t, err)
		assert.Equal(t, "2025-05", state.DisplayedMonth.MonthString())
		assert.Equal(t, "2025-03-03", state.Selected.String())

		_, err = f.calendar.ShiftMonth(1201)
		assert.ErrorIs(t, err, usecase.ErrInvalidCursorMovement)
	})

	t.Run("表示中の月を描画", func(t *testing.T) {
		view, err := f.calendar.DisplayedMonth(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "2025-05", view.Month)
	})
}
