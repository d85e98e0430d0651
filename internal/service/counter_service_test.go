package service

import (
	"Sundial/internal/api/config"
	"Sundial/internal/model"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounterService(counterRepo *fakeCounterRepo, historyRepo *fakeHistoryRepo, eventRepo *fakeEventRepo, maxRetry int) CounterService {
	cfg := config.AppConfig{
		RateLimitWindow: 5,
		HistoryWindow:   7,
		ApplyMaxRetry:   maxRetry,
	}
	return NewCounterService(counterRepo, historyRepo, eventRepo, NewHistoryService(historyRepo), cfg)
}

func TestApplyFirstEver(t *testing.T) {
	counterRepo := &fakeCounterRepo{}
	historyRepo := newFakeHistoryRepo()
	eventRepo := &fakeEventRepo{}
	svc := newTestCounterService(counterRepo, historyRepo, eventRepo, 3)

	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	counterDTO, err := svc.Apply(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), counterDTO.ApplicationCount)
	assert.Equal(t, 1, counterDTO.Streak)
	require.NotNil(t, counterDTO.LastStreakDate)
	assert.Equal(t, "2024-03-10", *counterDTO.LastStreakDate)
	require.NotNil(t, counterDTO.LastAppliedAt)
	assert.Equal(t, "2024-03-10T08:00:00Z", *counterDTO.LastAppliedAt)

	// 刚涂抹完，冷却为整窗口
	assert.Equal(t, 5, counterDTO.CooldownSeconds)
	assert.Equal(t, "Just now", counterDTO.TimeAgo)

	// 历史桶与审计事件各记一笔
	assert.Equal(t, 1, historyRepo.count(date(2024, 3, 10)))
	assert.Equal(t, 1, eventRepo.len())
}

func TestApplySameDayTwice(t *testing.T) {
	counterRepo := &fakeCounterRepo{}
	historyRepo := newFakeHistoryRepo()
	svc := newTestCounterService(counterRepo, historyRepo, &fakeEventRepo{}, 3)

	ctx := context.Background()
	morning := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	first, err := svc.Apply(ctx, morning)
	require.NoError(t, err)
	second, err := svc.Apply(ctx, morning.Add(4*time.Hour))
	require.NoError(t, err)

	// 同日重复涂抹：计数各加一，连续天数不变
	assert.Equal(t, uint64(1), first.ApplicationCount)
	assert.Equal(t, uint64(2), second.ApplicationCount)
	assert.Equal(t, first.Streak, second.Streak)
	assert.Equal(t, 2, historyRepo.count(date(2024, 3, 10)))
}

func TestApplyConsecutiveDayScenario(t *testing.T) {
	lastApplied := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	streakDate := date(2024, 3, 10)
	counterRepo := &fakeCounterRepo{}
	counterRepo.seed(model.Counter{
		ID:               1,
		ApplicationCount: 4,
		LastAppliedAt:    &lastApplied,
		Streak:           2,
		LastStreakDate:   &streakDate,
		Version:          4,
	})
	historyRepo := newFakeHistoryRepo()
	svc := newTestCounterService(counterRepo, historyRepo, &fakeEventRepo{}, 3)

	counterDTO, err := svc.Apply(context.Background(), time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, uint64(5), counterDTO.ApplicationCount)
	assert.Equal(t, 3, counterDTO.Streak)
	assert.Equal(t, "2024-03-11", *counterDTO.LastStreakDate)
	assert.Equal(t, 1, historyRepo.count(date(2024, 3, 11)))
}

func TestApplyRetriesOnConflict(t *testing.T) {
	counterRepo := &fakeCounterRepo{forceConflict: 2}
	historyRepo := newFakeHistoryRepo()
	svc := newTestCounterService(counterRepo, historyRepo, &fakeEventRepo{}, 3)

	counterDTO, err := svc.Apply(context.Background(), time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), counterDTO.ApplicationCount)
}

func TestApplyConflictExhausted(t *testing.T) {
	counterRepo := &fakeCounterRepo{forceConflict: 10}
	historyRepo := newFakeHistoryRepo()
	eventRepo := &fakeEventRepo{}
	svc := newTestCounterService(counterRepo, historyRepo, eventRepo, 3)

	_, err := svc.Apply(context.Background(), time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrApplyConflict)

	// 提交失败不产生任何副作用
	assert.Equal(t, 0, historyRepo.count(date(2024, 3, 10)))
	assert.Equal(t, 0, eventRepo.len())
}

func TestApplyZeroTimestamp(t *testing.T) {
	svc := newTestCounterService(&fakeCounterRepo{}, newFakeHistoryRepo(), &fakeEventRepo{}, 3)
	_, err := svc.Apply(context.Background(), time.Time{})
	assert.ErrorIs(t, err, ErrTimestampInvalid)
}

func TestApplyConcurrentAdditivity(t *testing.T) {
	counterRepo := &fakeCounterRepo{}
	historyRepo := newFakeHistoryRepo()
	svc := newTestCounterService(counterRepo, historyRepo, &fakeEventRepo{}, 100)

	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	const workers = 8
	const perWorker = 4

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := svc.Apply(context.Background(), now)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	// 并发涂抹不丢更新：总数与当日桶都净增 N
	final, err := counterRepo.GetOrCreate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(workers*perWorker), final.ApplicationCount)
	assert.Equal(t, workers*perWorker, historyRepo.count(date(2024, 3, 10)))
	assert.Equal(t, 1, final.Streak)
}

func TestGetOverview(t *testing.T) {
	counterRepo := &fakeCounterRepo{}
	historyRepo := newFakeHistoryRepo()
	svc := newTestCounterService(counterRepo, historyRepo, &fakeEventRepo{}, 3)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, historyRepo.Bump(ctx, date(2024, 3, 1+i)))
	}

	overview, err := svc.GetOverview(ctx)
	require.NoError(t, err)

	require.NotNil(t, overview.Counter)
	assert.Equal(t, uint64(0), overview.Counter.ApplicationCount)
	assert.Equal(t, 0, overview.Counter.CooldownSeconds)
	assert.Equal(t, "Never", overview.Counter.TimeAgo)
	assert.Nil(t, overview.Counter.LastAppliedAt)

	// 默认窗口 7 天，升序排列
	require.Len(t, overview.History, 7)
	assert.Equal(t, "2024-03-04", overview.History[0].Date)
	assert.Equal(t, "2024-03-10", overview.History[6].Date)
}

func TestGetRecentEvents(t *testing.T) {
	eventRepo := &fakeEventRepo{}
	svc := newTestCounterService(&fakeCounterRepo{}, newFakeHistoryRepo(), eventRepo, 3)

	ctx := context.Background()
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.Apply(ctx, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	events, err := svc.GetRecentEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(3), events[0].ApplicationCount)

	_, err = svc.GetRecentEvents(ctx, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
}
