package dto

// CounterDTO 计数器状态。CooldownSeconds 与 TimeAgo 由服务端按权威时间戳现算，
// 客户端每个 tick 重新拉取或重算，不在本地做递减。
type CounterDTO struct {
	ApplicationCount uint64  `json:"application_count"`
	LastAppliedAt    *string `json:"last_applied_at"`  // RFC3339，从未涂抹为 null
	Streak           int     `json:"streak"`
	LastStreakDate   *string `json:"last_streak_date"` // YYYY-MM-DD，从未涂抹为 null
	CooldownSeconds  int     `json:"cooldown_seconds"`
	TimeAgo          string  `json:"time_ago"`
}

// OverviewDTO 首页聚合：计数器 + 最近历史窗口（升序，最旧在前）
type OverviewDTO struct {
	Counter *CounterDTO        `json:"counter"`
	History []*HistoryEntryDTO `json:"history"`
}
