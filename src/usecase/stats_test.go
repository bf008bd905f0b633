package usecase_test

import (
	"context"
	"testing"

	"lifelog/src/domain"
	"lifelog/src/stats"
	"lifelog/src/store"
	"lifelog/src/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsUsecase_GetStats(t *testing.T) {
	ctx := context.Background()
	repos := memoryRepos()
	st := store.New()
	uc := usecase.NewStatsUsecase(store.NewLoader(st, repos, quietLogger()))

	t.Run("記録なし", func(t *testing.T) {
		report, err := uc.GetStats(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, stats.Monthly, report.Strategy)
		assert.Zero(t, report.Overall.CompletionRate)
		assert.Empty(t, report.Buckets)
	})

	category, err := repos.Categories.Create(ctx, &domain.Category{Name: "c", ColorType: domain.ColorCream})
	require.NoError(t, err)
	for _, tc := range []struct {
		start  string
		status domain.Status
	}{
		{"2025-07-01T09:00", domain.StatusDone},
		{"2025-07-02T09:00", domain.StatusInProgress},
		{"2025-05-02T09:00", domain.StatusDone},
		{"2025-05-03T09:00", domain.StatusDone},
	} {
		start := wallClock(tc.start)
		_, err := repos.Todos.Create(ctx, &domain.Todo{CategoryID: category.ID, Contents: "t", StartDateTime: start, EndDateTime: start, Status: tc.status})
		require.NoError(t, err)
	}
	_, err = repos.Journals.Create(ctx, &domain.Journal{
		Date:           domain.MustParseDate("2025-07-03"),
		FeelingComment: &domain.FeelingComment{Feeling: domain.FeelingCalm},
	})
	require.NoError(t, err)
	st.Invalidate()

	t.Run("月次の集計", func(t *testing.T) {
		report, err := uc.GetStats(ctx, "monthly", "")
		require.NoError(t, err)
		assert.Equal(t, 4, report.Overall.TotalTodos)
		assert.Equal(t, 75.0, report.Overall.CompletionRate)
		require.Len(t, report.Buckets, 2)
		assert.Equal(t, "2025-05", report.Buckets[0].Period)
		assert.Equal(t, 100.0, report.Buckets[0].CompletionRate)
		assert.Equal(t, "2025-07", report.Buckets[1].Period)
		assert.Equal(t, 50.0, report.Buckets[1].CompletionRate)
	})

	t.Run("期間を指定", func(t *testing.T) {
		report, err := uc.GetStats(ctx, "QUARTERLY", "2025-Q3")
		require.NoError(t, err)
		assert.Equal(t, "2025-Q3", report.Overall.Period)
		assert.Equal(t, 2, report.Overall.TotalTodos)
		assert.Equal(t, 1, report.Overall.TotalJournals)
		assert.Equal(t, domain.FeelingCalm, report.Overall.FeelingDistribution[0].Feeling)
		require.Len(t, report.Buckets, 1)
	})

	t.Run("不正な指定", func(t *testing.T) {
		_, err := uc.GetStats(ctx, "DAILY", "")
		assert.ErrorIs(t, err, usecase.ErrInvalidStatsStrategy)

		_, err = uc.GetStats(ctx, "YEARLY", "2025-07")
		assert.ErrorIs(t, err, usecase.ErrInvalidStatsPeriod)
		assert.ErrorIs(t, err, usecase.ErrValidation)
	})
}
