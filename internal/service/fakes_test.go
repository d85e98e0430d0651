package service

import (
	"Sundial/internal/model"
	"Sundial/internal/pkg/mongo"
	"Sundial/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

type fakeCounterRepo struct {
	mu            sync.Mutex
	created       bool
	counter       model.Counter
	forceConflict int // 剩余的强制冲突次数
}

func (f *fakeCounterRepo) GetOrCreate(ctx context.Context) (*model.Counter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.created {
		f.created = true
		f.counter = model.Counter{ID: 1}
	}
	c := f.counter
	return &c, nil
}

func (f *fakeCounterRepo) UpdateWithVersion(ctx context.Context, counter *model.Counter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.forceConflict > 0 {
		f.forceConflict--
		return repository.ErrVersionConflict
	}
	if counter.Version != f.counter.Version {
		return repository.ErrVersionConflict
	}
	f.counter = *counter
	f.counter.Version++
	counter.Version++
	return nil
}

func (f *fakeCounterRepo) seed(counter model.Counter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = true
	f.counter = counter
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	buckets map[string]int
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{buckets: map[string]int{}}
}

func (f *fakeHistoryRepo) Bump(ctx context.Context, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[date.Format(time.DateOnly)]++
	return nil
}

func (f *fakeHistoryRepo) sortedDesc() []string {
	dates := make([]string, 0, len(f.buckets))
	for d := range f.buckets {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

func (f *fakeHistoryRepo) entry(date string) *model.DailyHistory {
	day, _ := time.Parse(time.DateOnly, date)
	return &model.DailyHistory{Date: day, Count: f.buckets[date]}
}

func (f *fakeHistoryRepo) GetRecent(ctx context.Context, n int) ([]*model.DailyHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dates := f.sortedDesc()
	if len(dates) > n {
		dates = dates[:n]
	}
	histories := make([]*model.DailyHistory, 0, len(dates))
	for _, d := range dates {
		histories = append(histories, f.entry(d))
	}
	return histories, nil
}

func (f *fakeHistoryRepo) GetPage(ctx context.Context, page, perPage int) ([]*model.DailyHistory, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dates := f.sortedDesc()
	total := int64(len(dates))

	start := (page - 1) * perPage
	if start > len(dates) {
		start = len(dates)
	}
	end := start + perPage
	if end > len(dates) {
		end = len(dates)
	}

	histories := make([]*model.DailyHistory, 0, end-start)
	for _, d := range dates[start:end] {
		histories = append(histories, f.entry(d))
	}
	return histories, total, nil
}

func (f *fakeHistoryRepo) count(date time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[date.Format(time.DateOnly)]
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []*mongo.ApplyEvent
}

func (f *fakeEventRepo) SaveEvent(ctx context.Context, event *mongo.ApplyEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) GetRecent(ctx context.Context, limit int) ([]*mongo.ApplyEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.events)
	if limit > n {
		limit = n
	}
	events := make([]*mongo.ApplyEvent, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		events = append(events, f.events[i])
	}
	return events, nil
}

func (f *fakeEventRepo) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}
