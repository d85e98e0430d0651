package service

import (
	"fmt"
	"time"
)

// RemainingCooldown 由权威时间戳推导剩余冷却秒数，向上取整。
// 每次都从 lastAppliedAt 重算而不是本地递减，多个客户端无论何时订阅都会收敛到同一个值。
func RemainingCooldown(now time.Time, lastAppliedAt *time.Time, window time.Duration) int {
	if lastAppliedAt == nil {
		return 0
	}
	remaining := window - now.Sub(*lastAppliedAt)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

// FormatTimeAgo 把上次涂抹时刻格式化为相对时间文案
func FormatTimeAgo(now time.Time, lastAppliedAt *time.Time) string {
	if lastAppliedAt == nil {
		return "Never"
	}

	diff := now.Sub(*lastAppliedAt)
	if diff < time.Minute {
		return "Just now"
	}

	if diff < time.Hour {
		minutes := int(diff.Minutes())
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	}
	days := int(diff.Hours() / 24)
	return fmt.Sprintf("%d day%s ago", days, plural(days))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
