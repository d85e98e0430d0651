package service

import (
	"Sundial/internal/api/config"
	"Sundial/internal/api/dto"
	"Sundial/internal/model"
	"Sundial/internal/pkg/consts"
	"Sundial/internal/pkg/logger"
	"Sundial/internal/pkg/mongo"
	"Sundial/internal/pkg/redis"
	"Sundial/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

type CounterService interface {
	GetOverview(ctx context.Context) (*dto.OverviewDTO, error)
	Apply(ctx context.Context, now time.Time) (*dto.CounterDTO, error)
	GetRecentEvents(ctx context.Context, limit int) ([]*mongo.ApplyEvent, error)
	CounterSnapshot(ctx context.Context) ([]byte, error)
}

type counterServiceImpl struct {
	counterRepo repository.CounterRepo
	historyRepo repository.HistoryRepo
	eventRepo   mongo.ApplyEventRepo
	historySvc  HistoryService
	cfg         config.AppConfig
}

func NewCounterService(
	counterRepo repository.CounterRepo,
	historyRepo repository.HistoryRepo,
	eventRepo mongo.ApplyEventRepo,
	historySvc HistoryService,
	cfg config.AppConfig,
) CounterService {
	return &counterServiceImpl{
		counterRepo: counterRepo,
		historyRepo: historyRepo,
		eventRepo:   eventRepo,
		historySvc:  historySvc,
		cfg:         cfg,
	}
}

// GetOverview 计数器现状 + 最近历史窗口
func (s *counterServiceImpl) GetOverview(ctx context.Context) (*dto.OverviewDTO, error) {
	counter, err := s.counterRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get counter")
	}

	history, err := s.historySvc.RecentHistory(ctx, s.cfg.HistoryWindow)
	if err != nil {
		return nil, err
	}

	counterDTO, err := s.toCounterDTO(counter, time.Now())
	if err != nil {
		return nil, err
	}

	return &dto.OverviewDTO{
		Counter: counterDTO,
		History: history,
	}, nil
}

// Apply 执行一次涂抹状态转移。
// 读取-计算-条件写回，版本冲突则基于最新状态重算，重试次数有限。
// 历史桶自增、审计事件与变更广播都在写回成功之后执行。
func (s *counterServiceImpl) Apply(ctx context.Context, now time.Time) (*dto.CounterDTO, error) {
	if now.IsZero() {
		return nil, ErrTimestampInvalid
	}

	var next *model.Counter
	committed := false
	for i := 0; i < s.cfg.ApplyMaxRetry && !committed; i++ {
		prev, err := s.counterRepo.GetOrCreate(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "get counter")
		}

		next = nextState(prev, now)
		err = s.counterRepo.UpdateWithVersion(ctx, next)
		switch {
		case err == nil:
			committed = true
		case errors.Is(err, repository.ErrVersionConflict):
			continue
		default:
			return nil, errors.Wrap(err, "persist counter")
		}
	}
	if !committed {
		return nil, ErrApplyConflict
	}

	if err := s.historyRepo.Bump(ctx, *next.LastStreakDate); err != nil {
		return nil, errors.Wrap(err, "bump history")
	}
	s.historySvc.InvalidateRecent(ctx, s.cfg.HistoryWindow)

	s.recordEvent(ctx, next)
	s.publishChange(ctx, next, now)

	return s.toCounterDTO(next, now)
}

// GetRecentEvents 最近的涂抹审计事件
func (s *counterServiceImpl) GetRecentEvents(ctx context.Context, limit int) ([]*mongo.ApplyEvent, error) {
	if limit <= 0 || limit > 100 {
		return nil, ErrParamInvalid
	}
	events, err := s.eventRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "get apply events")
	}
	return events, nil
}

// CounterSnapshot 当前计数器的 JSON 快照，供 WS 连接建立时下发
func (s *counterServiceImpl) CounterSnapshot(ctx context.Context) ([]byte, error) {
	counter, err := s.counterRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get counter")
	}
	counterDTO, err := s.toCounterDTO(counter, time.Now())
	if err != nil {
		return nil, err
	}
	return json.Marshal(counterDTO)
}

// recordEvent 写审计事件，失败只记日志，不影响本次涂抹结果
func (s *counterServiceImpl) recordEvent(ctx context.Context, counter *model.Counter) {
	traceID, _ := ctx.Value(logger.TraceIDKey).(string)

	writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	event := &mongo.ApplyEvent{
		AppliedAt:        *counter.LastAppliedAt,
		ApplicationCount: counter.ApplicationCount,
		Streak:           counter.Streak,
		StreakDate:       counter.LastStreakDate.Format(time.DateOnly),
		TraceID:          traceID,
	}
	if err := s.eventRepo.SaveEvent(writeCtx, event); err != nil {
		log.ErrorContext(ctx, "save apply event failed", "err", err)
	}
}

// publishChange 把更新后的记录广播到 Redis 频道，WS 端订阅转发
func (s *counterServiceImpl) publishChange(ctx context.Context, counter *model.Counter, now time.Time) {
	counterDTO, err := s.toCounterDTO(counter, now)
	if err != nil {
		log.ErrorContext(ctx, "build change payload failed", "err", err)
		return
	}
	payload, err := json.Marshal(counterDTO)
	if err != nil {
		log.ErrorContext(ctx, "marshal change payload failed", "err", err)
		return
	}
	if err := redis.Publish(ctx, consts.CounterEventsChannel, payload); err != nil {
		log.ErrorContext(ctx, "publish counter change failed", "err", err)
	}
}

func (s *counterServiceImpl) toCounterDTO(counter *model.Counter, now time.Time) (*dto.CounterDTO, error) {
	counterDTO := &dto.CounterDTO{}
	if err := copier.Copy(counterDTO, counter); err != nil {
		return nil, errors.Wrap(err, "copy counter")
	}

	if counter.LastAppliedAt != nil {
		appliedAt := counter.LastAppliedAt.UTC().Format(time.RFC3339)
		counterDTO.LastAppliedAt = &appliedAt
	}
	if counter.LastStreakDate != nil {
		streakDate := counter.LastStreakDate.Format(time.DateOnly)
		counterDTO.LastStreakDate = &streakDate
	}

	window := time.Duration(s.cfg.RateLimitWindow) * time.Second
	counterDTO.CooldownSeconds = RemainingCooldown(now, counter.LastAppliedAt, window)
	counterDTO.TimeAgo = FormatTimeAgo(now, counter.LastAppliedAt)
	return counterDTO, nil
}
