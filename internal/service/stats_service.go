package service

import (
	"Sundial/internal/api/dto"
	"Sundial/internal/pkg/consts"
	"Sundial/internal/pkg/redis"
	"Sundial/internal/repository"
	"context"
	"strconv"

	"github.com/pkg/errors"
)

type StatsService interface {
	VisitSite(ctx context.Context, counted bool) (*dto.SiteStatDTO, error)
	FlushViewCount(ctx context.Context) error
}

type statsServiceImpl struct {
	siteStatRepo repository.SiteStatRepo
}

func NewStatsService(siteStatRepo repository.SiteStatRepo) StatsService {
	return &statsServiceImpl{siteStatRepo: siteStatRepo}
}

// VisitSite 返回站点访问量，counted 为 false 时先自增一次。
// 运行值放在 Redis，缺失时从 MySQL 初始化；写回任务周期性落库。
func (s *statsServiceImpl) VisitSite(ctx context.Context, counted bool) (*dto.SiteStatDTO, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	if !counted {
		count, err := redis.Incr(ctx, consts.SiteViewCountKey)
		if err != nil {
			return nil, errors.Wrap(err, "incr view count")
		}
		return &dto.SiteStatDTO{ViewCount: uint64(count)}, nil
	}

	value, err := redis.GetValue(ctx, consts.SiteViewCountKey)
	if err != nil {
		return nil, errors.Wrap(err, "get view count")
	}
	count, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parse view count")
	}
	return &dto.SiteStatDTO{ViewCount: count}, nil
}

// FlushViewCount 把 Redis 运行值快照回 MySQL
func (s *statsServiceImpl) FlushViewCount(ctx context.Context) error {
	value, err := redis.GetValue(ctx, consts.SiteViewCountKey)
	if err != nil {
		return errors.Wrap(err, "get view count")
	}
	if value == "" {
		return nil
	}
	count, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return errors.Wrap(err, "parse view count")
	}
	return errors.Wrap(s.siteStatRepo.SaveViewCount(ctx, count), "save view count")
}

// ensureInitialized Redis 无运行值时用 MySQL 的快照做种子
func (s *statsServiceImpl) ensureInitialized(ctx context.Context) error {
	value, err := redis.GetValue(ctx, consts.SiteViewCountKey)
	if err != nil {
		return errors.Wrap(err, "get view count")
	}
	if value != "" {
		return nil
	}

	count, err := s.siteStatRepo.GetViewCount(ctx)
	if err != nil {
		return errors.Wrap(err, "load view count")
	}
	_, err = redis.SetNX(ctx, consts.SiteViewCountKey, count, 0)
	return errors.Wrap(err, "seed view count")
}
