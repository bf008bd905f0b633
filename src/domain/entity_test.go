package domain_test

import (
	"testing"

	"lifelog/src/domain"

	"github.com/stretchr/testify/assert"
)

func TestAnniversary_OccursOn(t *testing.T) {
	birthday := domain.Anniversary{Date: domain.MustParseDate("1990-07-09")}
	leapDay := domain.Anniversary{Date: domain.MustParseDate("2000-02-29")}

	tests := []struct {
		name        string
		anniversary domain.Anniversary
		date        string
		want        bool
	}{
		{name: "年に関係なく同じ月日", anniversary: birthday, date: "2025-07-09", want: true},
		{name: "別の日", anniversary: birthday, date: "2025-07-10", want: false},
		{name: "うるう年は2月29日", anniversary: leapDay, date: "2024-02-29", want: true},
		{name: "うるう年の2月28日は対象外", anniversary: leapDay, date: "2024-02-28", want: false},
		{name: "平年は2月28日", anniversary: leapDay, date: "2025-02-28", want: true},
		{name: "平年の3月1日は対象外", anniversary: leapDay, date: "2025-03-01", want: false},
		{name: "日付なし", anniversary: domain.Anniversary{}, date: "2025-07-09", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.anniversary.OccursOn(domain.MustParseDate(tt.date)))
		})
	}
}

func TestJournal_Feeling(t *testing.T) {
	assert.Equal(t, domain.Feeling(""), domain.Journal{}.Feeling())

	j := domain.Journal{FeelingComment: &domain.FeelingComment{Feeling: domain.FeelingHappy}}
	assert.Equal(t, domain.FeelingHappy, j.Feeling())
}

func TestEnums(t *testing.T) {
	for _, s := range domain.Statuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.True(t, domain.Status("DONE").IsValid())
	assert.False(t, domain.Status("done").IsValid())
	assert.False(t, domain.Status("FINISHED").IsValid())

	assert.Len(t, domain.Weathers, 13)
	assert.Len(t, domain.Feelings, 13)
	assert.False(t, domain.Weather("").IsValid())

	assert.False(t, domain.ColorType("").IsValid())
	assert.Equal(t, domain.FallbackColorHex, domain.ColorType("NEON").Hex())
}

func TestScope(t *testing.T) {
	scope, err := domain.ParseScope("Weekly")
	assert.NoError(t, err)
	assert.Equal(t, domain.ScopeWeekly, scope)

	_, err = domain.ParseScope("yearly")
	assert.ErrorIs(t, err, domain.ErrInvalidScope)

	d := domain.MustParseDate("2025-07-09")
	assert.Equal(t, domain.DayRange(d), domain.ScopeDaily.RangeOf(d))
	assert.Equal(t, domain.WeekRange(d), domain.ScopeWeekly.RangeOf(d))
	assert.Equal(t, domain.MonthRange(d), domain.ScopeMonthly.RangeOf(d))
}
