package api

import "Sundial/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	CounterHandler *handler.CounterHandler
	HistoryHandler *handler.HistoryHandler
	StatsHandler   *handler.StatsHandler
	WSHandler      *handler.WsHandler
}
