package repository_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"lifelog/src/database"
	"lifelog/src/domain"
	"lifelog/src/infrastructure/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and starts from empty tables
func openTestDB(t *testing.T) (*database.DB, *logrus.Logger) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL が未設定のためスキップします")
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	db, err := database.Open(url, log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))
	_, err = db.ExecContext(ctx, `TRUNCATE journals, todos, categories, anniversaries, profiles`)
	require.NoError(t, err)
	return db, log
}

func TestJournalRepository_Postgres(t *testing.T) {
	db, log := openTestDB(t)
	repo := repository.NewJournalRepository(db, log)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	created, err := repo.Create(ctx, &domain.Journal{
		Date:           domain.MustParseDate("2025-07-15"),
		FeelingComment: &domain.FeelingComment{Feeling: domain.FeelingHappy, Comment: "晴れやか"},
		ImageIDs:       []string{"a.png"},
		RegisteredOn:   now,
		ModifiedOn:     now,
	})
	require.NoError(t, err)

	t.Run("同じ日付は一意制約で拒否される", func(t *testing.T) {
		_, err := repo.Create(ctx, &domain.Journal{Date: domain.MustParseDate("2025-07-15"), RegisteredOn: now, ModifiedOn: now})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("日付で取得できる", func(t *testing.T) {
		got, err := repo.GetByDate(ctx, domain.MustParseDate("2025-07-15"))
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, domain.FeelingHappy, got.Feeling())
		assert.Nil(t, got.WeatherComment)
		assert.Equal(t, []string{"a.png"}, got.ImageIDs)
	})

	t.Run("範囲外の日付は含まれない", func(t *testing.T) {
		got, err := repo.ListBetween(ctx, domain.MonthRange(domain.MustParseDate("2025-06-01")))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("不正なIDはNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("削除後は見つからない", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, created.ID))
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)
	})
}

func TestTodoRepository_Postgres(t *testing.T) {
	db, log := openTestDB(t)
	repo := repository.NewTodoRepository(db, log)
	ctx := context.Background()

	at := func(s string) time.Time {
		tm, err := time.Parse("2006-01-02T15:04", s)
		require.NoError(t, err)
		return tm
	}
	for _, start := range []string{"2025-07-15T21:00", "2025-07-15T09:00", "2025-07-16T00:00"} {
		_, err := repo.Create(ctx, &domain.Todo{
			CategoryID:    "0f8e7d6c-5b4a-4392-8170-6a5b4c3d2e1f",
			Contents:      start,
			StartDateTime: at(start),
			EndDateTime:   at(start),
			Status:        domain.StatusNotStarted,
			RegisteredOn:  time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	got, err := repo.ListBetween(ctx, domain.DayRange(domain.MustParseDate("2025-07-15")))
	require.NoError(t, err)
	require.Len(t, got, 2)
	// 壁時計の時刻がタイムゾーンでずれないこと
	assert.Equal(t, at("2025-07-15T09:00"), got[0].StartDateTime.UTC())
	assert.Equal(t, at("2025-07-15T21:00"), got[1].StartDateTime.UTC())
}

func TestCategoryRepository_Postgres(t *testing.T) {
	db, log := openTestDB(t)
	repo := repository.NewCategoryRepository(db, log)
	ctx := context.Background()

	work, err := repo.Create(ctx, &domain.Category{Name: "仕事", ColorType: domain.ColorBabyBlue, OrderNo: 1})
	require.NoError(t, err)
	home, err := repo.Create(ctx, &domain.Category{Name: "家", ColorType: domain.ColorPeach, OrderNo: 2})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateOrder(ctx, []string{home.ID, work.ID}))
	require.NoError(t, repo.Remove(ctx, work.ID))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, home.ID, active[0].ID)
	assert.Equal(t, 1, active[0].OrderNo)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	removed, err := repo.GetByID(ctx, work.ID)
	require.NoError(t, err)
	assert.True(t, removed.Removed)
}
