package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 贯穿 HTTP 请求、WS 连接与定时任务的追踪键
const TraceIDKey = "trace_id"

// ContextHandler 从 ctx 中提取 trace_id 并附加到每条记录
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String("trace_id", traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
