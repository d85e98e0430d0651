package service

import (
	"Sundial/internal/model"
	"time"
)

// CalendarDate 把任意时刻截断为 UTC 自然日。
// 连续打卡字段和历史桶的键必须用同一套日界规则，否则午夜前后会出现偏斜。
func CalendarDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayDistance 两个自然日之间的整日数（b - a，可为负）
func DayDistance(a, b time.Time) int {
	return int(CalendarDate(b).Sub(CalendarDate(a)).Hours() / 24)
}

// computeNextStreak 连续打卡天数转移规则：
// 同一自然日不变，相邻自然日加一，间隔两天以上（含时钟回拨导致的负间隔）重置为 1。
func computeNextStreak(currentStreak int, lastStreakDate *time.Time, now time.Time) int {
	if lastStreakDate == nil {
		return 1
	}

	d := DayDistance(*lastStreakDate, now)
	switch {
	case d == 0:
		return currentStreak
	case d == 1:
		return currentStreak + 1
	default:
		return 1
	}
}

// nextState 由上一份记录和当前时刻计算下一份记录，纯函数，持久化失败由调用方处理
func nextState(prev *model.Counter, now time.Time) *model.Counter {
	appliedAt := now
	streakDate := CalendarDate(now)

	next := *prev
	next.ApplicationCount = prev.ApplicationCount + 1
	next.LastAppliedAt = &appliedAt
	next.Streak = computeNextStreak(prev.Streak, prev.LastStreakDate, now)
	next.LastStreakDate = &streakDate
	return &next
}
