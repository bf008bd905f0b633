package usecase_test

import (
	"context"
	"testing"

	"lifelog/src/domain"
	"lifelog/src/infrastructure/memory"
	"lifelog/src/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnniversaryUsecase(t *testing.T) {
	ctx := context.Background()
	st := loadedStore()
	uc := usecase.NewAnniversaryUsecase(memory.NewAnniversaryRepository(), st)

	created, err := uc.CreateAnniversary(ctx, usecase.CreateAnniversaryRequest{
		DateType: domain.AnniversarySpecial,
		Date:     domain.MustParseDate("2000-02-29"),
		Name:     "うるう年の記念日",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WeightMedium, created.Weight)
	assert.True(t, st.Stale())

	t.Run("2月29日は平年では2月28日に表示", func(t *testing.T) {
		got, err := uc.FindAnniversaries(ctx, domain.ScopeDaily, domain.MustParseDate("2025-02-28"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "2025-02-28", got[0].Date.String())

		got, err = uc.FindAnniversaries(ctx, domain.ScopeMonthly, domain.MustParseDate("2024-02-10"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "2024-02-29", got[0].Date.String())
	})

	t.Run("更新", func(t *testing.T) {
		weight := domain.WeightHigh
		name := "記念日"
		got, err := uc.UpdateAnniversary(ctx, created.ID, usecase.UpdateAnniversaryRequest{Weight: &weight, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, domain.WeightHigh, got.Weight)
		assert.Equal(t, "記念日", got.Name)
	})

	t.Run("入力エラー", func(t *testing.T) {
		_, err := uc.CreateAnniversary(ctx, usecase.CreateAnniversaryRequest{DateType: domain.AnniversaryHoliday, Name: "x"})
		assert.ErrorIs(t, err, usecase.ErrInvalidDate)

		_, err = uc.CreateAnniversary(ctx, usecase.CreateAnniversaryRequest{DateType: "BIRTHDAY", Date: domain.MustParseDate("2000-01-01"), Name: "x"})
		assert.ErrorIs(t, err, usecase.ErrInvalidAnniversaryType)

		_, err = uc.CreateAnniversary(ctx, usecase.CreateAnniversaryRequest{DateType: domain.AnniversaryHoliday, Date: domain.MustParseDate("2000-01-01"), Name: ""})
		assert.ErrorIs(t, err, usecase.ErrInvalidAnniversaryName)

		_, err = uc.FindAnniversaries(ctx, domain.ScopeWeekly, domain.Date{})
		assert.ErrorIs(t, err, usecase.ErrInvalidDate)
	})

	t.Run("削除", func(t *testing.T) {
		require.NoError(t, uc.DeleteAnniversary(ctx, created.ID))
		_, err := uc.GetAnniversary(ctx, created.ID)
		assert.ErrorIs(t, err, usecase.ErrAnniversaryNotFound)
		assert.ErrorIs(t, uc.DeleteAnniversary(ctx, created.ID), usecase.ErrAnniversaryNotFound)
	})
}
