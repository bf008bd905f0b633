package store_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"lifelog/src/calendar"
	"lifelog/src/domain"
	"lifelog/src/infrastructure/memory"
	"lifelog/src/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func memoryRepos() store.Repositories {
	return store.Repositories{
		Journals:      memory.NewJournalRepository(),
		Todos:         memory.NewTodoRepository(),
		Categories:    memory.NewCategoryRepository(),
		Anniversaries: memory.NewAnniversaryRepository(),
		Profiles:      memory.NewProfileRepository(),
	}
}

func calendarWindow(today string) calendar.Window {
	d := domain.MustParseDate(today)
	return calendar.Window{
		Start: calendar.DefaultServiceStart,
		Today: func() domain.Date { return d },
	}
}

type failingTodos struct {
	domain.TodoRepository
}

func (failingTodos) List(context.Context) ([]domain.Todo, error) {
	return nil, errors.New("connection refused")
}

func TestLoader_EnsureLoadsOnlyWhenStale(t *testing.T) {
	ctx := context.Background()
	repos := memoryRepos()
	s := store.New()
	loader := store.NewLoader(s, repos, newLogger())

	_, err := repos.Journals.Create(ctx, &domain.Journal{Date: domain.MustParseDate("2025-07-01")})
	require.NoError(t, err)
	_, err = repos.Categories.Create(ctx, &domain.Category{Name: "old", Removed: true})
	require.NoError(t, err)

	snap, err := loader.Ensure(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Journals, 1)
	// 削除済みカテゴリもスナップショットに含める
	assert.Len(t, snap.Categories, 1)
	assert.Nil(t, snap.Profile)

	// 更新がなければ同じスナップショットを返す
	_, err = repos.Journals.Create(ctx, &domain.Journal{Date: domain.MustParseDate("2025-07-02")})
	require.NoError(t, err)
	again, err := loader.Ensure(ctx)
	require.NoError(t, err)
	assert.Same(t, snap, again)

	s.Invalidate()
	reloaded, err := loader.Ensure(ctx)
	require.NoError(t, err)
	assert.Len(t, reloaded.Journals, 2)
	assert.Greater(t, reloaded.Generation, snap.Generation)
}

func TestLoader_RefreshError(t *testing.T) {
	repos := memoryRepos()
	repos.Todos = failingTodos{}
	s := store.New()
	loader := store.NewLoader(s, repos, newLogger())

	snap, err := loader.Refresh(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load todos")
	assert.Nil(t, snap)
	assert.True(t, s.Stale())
}

func TestAppState_Reset(t *testing.T) {
	window := calendarWindow("2025-07-15")
	state := store.NewAppState(window)
	require.True(t, state.Store.Commit(state.Store.Begin(), store.Snapshot{}))
	state.Cursor.ShiftMonth(-3)

	state.Reset()
	assert.Nil(t, state.Store.Current())
	assert.Equal(t, "2025-07", state.Cursor.DisplayedMonth().MonthString())
}
