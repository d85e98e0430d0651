package service

import (
	"Sundial/internal/api/dto"
	"Sundial/internal/model"
	"Sundial/internal/pkg/consts"
	"Sundial/internal/pkg/redis"
	"Sundial/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	defaultHistoryPerPage = 10
	maxHistoryPerPage     = 100
)

type HistoryService interface {
	RecentHistory(ctx context.Context, n int) ([]*dto.HistoryEntryDTO, error)
	HistoryPage(ctx context.Context, req *dto.HistoryPageReq) (*dto.HistoryPageDTO, error)
	InvalidateRecent(ctx context.Context, n int)
}

type historyServiceImpl struct {
	historyRepo repository.HistoryRepo
}

func NewHistoryService(historyRepo repository.HistoryRepo) HistoryService {
	return &historyServiceImpl{historyRepo: historyRepo}
}

// RecentHistory 最近 n 天的桶，按日期升序（最旧在前）。
// 结果缓存到午夜前 5 分钟，涂抹成功后主动失效。
func (s *historyServiceImpl) RecentHistory(ctx context.Context, n int) ([]*dto.HistoryEntryDTO, error) {
	if n <= 0 {
		return nil, ErrParamInvalid
	}

	key := consts.HistoryRecentKey + strconv.Itoa(n)
	if cached, err := redis.GetList(ctx, key); err == nil && len(cached) != 0 {
		history := make([]*dto.HistoryEntryDTO, 0, len(cached))
		ok := true
		for _, v := range cached {
			var entry *dto.HistoryEntryDTO
			if err := json.Unmarshal([]byte(v), &entry); err != nil {
				ok = false
				break
			}
			history = append(history, entry)
		}
		if ok {
			return history, nil
		}
	}

	buckets, err := s.historyRepo.GetRecent(ctx, n)
	if err != nil {
		return nil, errors.Wrap(err, "get recent history")
	}

	// 仓库返回降序，窗口内按升序展示
	history := make([]*dto.HistoryEntryDTO, 0, len(buckets))
	for i := len(buckets) - 1; i >= 0; i-- {
		history = append(history, toHistoryEntryDTO(buckets[i]))
	}

	s.cacheRecent(ctx, key, history)
	return history, nil
}

// HistoryPage 按日期降序分页
func (s *historyServiceImpl) HistoryPage(ctx context.Context, req *dto.HistoryPageReq) (*dto.HistoryPageDTO, error) {
	page := req.Page
	if page == 0 {
		page = 1
	}
	perPage := req.PerPage
	if perPage == 0 {
		perPage = defaultHistoryPerPage
	}
	if page < 1 || perPage < 1 || perPage > maxHistoryPerPage {
		return nil, ErrParamInvalid
	}

	buckets, total, err := s.historyRepo.GetPage(ctx, page, perPage)
	if err != nil {
		return nil, errors.Wrap(err, "get history page")
	}

	items := make([]*dto.HistoryEntryDTO, 0, len(buckets))
	for _, bucket := range buckets {
		items = append(items, toHistoryEntryDTO(bucket))
	}

	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}

	return &dto.HistoryPageDTO{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

// InvalidateRecent 删除最近窗口缓存
func (s *historyServiceImpl) InvalidateRecent(ctx context.Context, n int) {
	key := consts.HistoryRecentKey + strconv.Itoa(n)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.ErrorContext(ctx, "invalidate history cache failed", "err", err)
	}
}

// cacheRecent 缓存过期对齐 UTC 午夜，提前 5 分钟
func (s *historyServiceImpl) cacheRecent(ctx context.Context, key string, history []*dto.HistoryEntryDTO) {
	if len(history) == 0 {
		return
	}

	entryJsons := make([]string, 0, len(history))
	for _, v := range history {
		entryJson, err := json.Marshal(v)
		if err != nil {
			return
		}
		entryJsons = append(entryJsons, string(entryJson))
	}

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	expiration := time.Until(midnight) - time.Minute*5
	if expiration < 0 {
		return
	}

	_ = redis.SetListWithExpiration(ctx, key, entryJsons, expiration)
}

func toHistoryEntryDTO(bucket *model.DailyHistory) *dto.HistoryEntryDTO {
	return &dto.HistoryEntryDTO{
		Date:  bucket.Date.Format(time.DateOnly),
		Count: bucket.Count,
	}
}
