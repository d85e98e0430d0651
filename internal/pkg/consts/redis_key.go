package consts

const (
	HistoryRecentKey     = "history:recent:"
	SiteViewCountKey     = "site:view:count"
	CounterEventsChannel = "counter:events"
)

const (
	ViewCountedCookie = "sundial_view_counted"
)
