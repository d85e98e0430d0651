package job

import (
	"Sundial/internal/pkg/logger"
	"Sundial/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// ViewFlushJob 周期性把 Redis 中的站点访问量快照回 MySQL
type ViewFlushJob struct {
	statsSvc service.StatsService
}

func NewViewFlushJob(statsSvc service.StatsService) *ViewFlushJob {
	return &ViewFlushJob{statsSvc: statsSvc}
}

func (s *ViewFlushJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.statsSvc.FlushViewCount(ctx); err != nil {
		log.ErrorContext(ctx, "flush view count error", "err", err)
		return
	}
	log.InfoContext(ctx, "flush view count success")
}
