package service

import (
	"Sundial/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendarDate(t *testing.T) {
	instant := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, date(2024, 3, 10), CalendarDate(instant))

	// 非 UTC 时区先换算到 UTC 再截断
	loc := time.FixedZone("UTC+8", 8*3600)
	early := time.Date(2024, 3, 11, 6, 0, 0, 0, loc) // UTC 2024-03-10 22:00
	assert.Equal(t, date(2024, 3, 10), CalendarDate(early))
}

func TestDayDistance(t *testing.T) {
	assert.Equal(t, 0, DayDistance(date(2024, 3, 10), date(2024, 3, 10)))
	assert.Equal(t, 1, DayDistance(date(2024, 3, 10), date(2024, 3, 11)))
	assert.Equal(t, 2, DayDistance(date(2024, 3, 10), date(2024, 3, 12)))
	assert.Equal(t, -1, DayDistance(date(2024, 3, 11), date(2024, 3, 10)))

	// 时刻部分不影响日距
	a := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DayDistance(a, b))
}

func TestComputeNextStreak(t *testing.T) {
	d10 := date(2024, 3, 10)

	tests := []struct {
		name           string
		currentStreak  int
		lastStreakDate *time.Time
		now            time.Time
		want           int
	}{
		{"首次涂抹", 0, nil, date(2024, 3, 10), 1},
		{"同一自然日不变", 3, &d10, time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), 3},
		{"相邻自然日加一", 3, &d10, time.Date(2024, 3, 11, 0, 30, 0, 0, time.UTC), 4},
		{"隔两天重置", 5, &d10, date(2024, 3, 12), 1},
		{"隔更久重置", 5, &d10, date(2024, 4, 1), 1},
		{"时钟回拨按重置处理", 5, &d10, date(2024, 3, 9), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeNextStreak(tt.currentStreak, tt.lastStreakDate, tt.now))
		})
	}
}

func TestNextStateFirstApply(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	next := nextState(&model.Counter{ID: 1}, now)

	assert.Equal(t, uint64(1), next.ApplicationCount)
	assert.Equal(t, 1, next.Streak)
	require.NotNil(t, next.LastAppliedAt)
	assert.Equal(t, now, *next.LastAppliedAt)
	require.NotNil(t, next.LastStreakDate)
	assert.Equal(t, date(2024, 3, 10), *next.LastStreakDate)
}

func TestNextStateConsecutiveDay(t *testing.T) {
	// {applicationCount:4, streak:2, lastStreakDate:2024-03-10} 在 2024-03-11 涂抹
	lastApplied := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	streakDate := date(2024, 3, 10)
	prev := &model.Counter{
		ID:               1,
		ApplicationCount: 4,
		LastAppliedAt:    &lastApplied,
		Streak:           2,
		LastStreakDate:   &streakDate,
	}

	now := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	next := nextState(prev, now)

	assert.Equal(t, uint64(5), next.ApplicationCount)
	assert.Equal(t, 3, next.Streak)
	assert.Equal(t, date(2024, 3, 11), *next.LastStreakDate)
	assert.Equal(t, now, *next.LastAppliedAt)

	// 原记录不被修改
	assert.Equal(t, uint64(4), prev.ApplicationCount)
	assert.Equal(t, 2, prev.Streak)
}

func TestNextStateSameDayKeepsStreak(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	first := nextState(&model.Counter{ID: 1}, now)
	second := nextState(first, now.Add(2*time.Hour))

	// 同日重复涂抹：计数加一，连续天数不变
	assert.Equal(t, uint64(2), second.ApplicationCount)
	assert.Equal(t, first.Streak, second.Streak)
	assert.Equal(t, *first.LastStreakDate, *second.LastStreakDate)
}

func TestNextStateGapResets(t *testing.T) {
	streakDate := date(2024, 3, 10)
	prev := &model.Counter{
		ID:               1,
		ApplicationCount: 9,
		Streak:           7,
		LastStreakDate:   &streakDate,
	}

	next := nextState(prev, date(2024, 3, 12).Add(10*time.Hour))

	assert.Equal(t, uint64(10), next.ApplicationCount)
	assert.Equal(t, 1, next.Streak)
	assert.Equal(t, date(2024, 3, 12), *next.LastStreakDate)
}
