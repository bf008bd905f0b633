package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"lifelog/src/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Date
		wantErr bool
	}{
		{name: "通常の日付", input: "2025-07-09", want: domain.NewDate(2025, time.July, 9)},
		{name: "うるう日", input: "2024-02-29", want: domain.NewDate(2024, time.February, 29)},
		{name: "平年の2月29日は不正", input: "2025-02-29", wantErr: true},
		{name: "存在しない日", input: "2025-02-30", wantErr: true},
		{name: "区切り文字なし", input: "20250709", wantErr: true},
		{name: "空文字", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDate_DateOfIgnoresTimeOfDay(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	early := time.Date(2025, 7, 9, 0, 0, 0, 0, seoul)
	late := time.Date(2025, 7, 9, 23, 59, 59, 0, seoul)

	assert.Equal(t, domain.DateOf(early), domain.DateOf(late))
	assert.Equal(t, "2025-07-09", domain.DateOf(late).String())
}

func TestDate_AddMonthsClampsDay(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		months int
		want   string
	}{
		{name: "1月31日の翌月はうるう年なら2月29日", from: "2024-01-31", months: 1, want: "2024-02-29"},
		{name: "1月31日の翌月は平年なら2月28日", from: "2025-01-31", months: 1, want: "2025-02-28"},
		{name: "年をまたぐ", from: "2025-12-15", months: 1, want: "2026-01-15"},
		{name: "前月へ戻る", from: "2025-03-31", months: -1, want: "2025-02-28"},
		{name: "1年前", from: "2025-07-01", months: -12, want: "2024-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.MustParseDate(tt.from).AddMonths(tt.months)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDate_CompareAndRanges(t *testing.T) {
	a := domain.MustParseDate("2025-07-09")
	b := domain.MustParseDate("2025-07-10")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(domain.NewDate(2025, time.July, 9)))
	assert.True(t, a.SameMonth(b))

	t.Run("週は日曜日から土曜日", func(t *testing.T) {
		// 2025-07-09 は水曜日
		week := domain.WeekRange(a)
		assert.Equal(t, "2025-07-06", week.From.String())
		assert.Equal(t, "2025-07-12", week.To.String())
		assert.Equal(t, time.Sunday, week.From.Weekday())
		assert.Len(t, week.Days(), 7)
	})

	t.Run("月の範囲", func(t *testing.T) {
		month := domain.MonthRange(domain.MustParseDate("2024-02-10"))
		assert.Equal(t, "2024-02-01", month.From.String())
		assert.Equal(t, "2024-02-29", month.To.String())
		assert.True(t, month.Contains(domain.MustParseDate("2024-02-29")))
		assert.False(t, month.Contains(domain.MustParseDate("2024-03-01")))
	})
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, domain.DaysInMonth(2024, time.February))
	assert.Equal(t, 28, domain.DaysInMonth(2025, time.February))
	assert.Equal(t, 28, domain.DaysInMonth(1900, time.February))
	assert.Equal(t, 29, domain.DaysInMonth(2000, time.February))
	assert.Equal(t, 30, domain.DaysInMonth(2025, time.April))
	assert.Equal(t, 31, domain.DaysInMonth(2025, time.December))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date domain.Date `json:"date"`
	}

	data, err := json.Marshal(payload{Date: domain.MustParseDate("2025-01-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-01-01"}`, string(data))

	data, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(data))

	var p payload
	assert.Error(t, json.Unmarshal([]byte(`{"date":"2025-13-01"}`), &p))
}

func TestDate_Scan(t *testing.T) {
	var d domain.Date

	require.NoError(t, d.Scan(time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-07-09", d.String())

	require.NoError(t, d.Scan([]byte("2025-07-10T00:00:00Z")))
	assert.Equal(t, "2025-07-10", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestParseDateTime(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	t.Run("オフセットなしは壁時計のまま", func(t *testing.T) {
		got, err := domain.ParseDateTime("2025-07-09T21:00", seoul)
		require.NoError(t, err)
		assert.Equal(t, 21, got.Hour())
		assert.Equal(t, "2025-07-09", domain.DateOf(got).String())
	})

	t.Run("RFC3339はサービスのタイムゾーンへ変換", func(t *testing.T) {
		// UTC 16:30 はソウルでは翌日 01:30
		got, err := domain.ParseDateTime("2025-07-09T16:30:00Z", seoul)
		require.NoError(t, err)
		assert.Equal(t, "2025-07-10", domain.DateOf(got).String())
		assert.Equal(t, 1, got.Hour())
		assert.Equal(t, 30, got.Minute())
	})

	t.Run("不正な形式", func(t *testing.T) {
		_, err := domain.ParseDateTime("09/07/2025", seoul)
		assert.ErrorIs(t, err, domain.ErrInvalidDateTime)
	})
}

func TestMoveToDate(t *testing.T) {
	start := time.Date(2025, 7, 9, 19, 45, 0, 0, time.UTC)
	moved := domain.MoveToDate(start, domain.MustParseDate("2025-08-01"))

	assert.Equal(t, "2025-08-01", domain.DateOf(moved).String())
	assert.Equal(t, 19, moved.Hour())
	assert.Equal(t, 45, moved.Minute())
}
