package repository

import (
	"Sundial/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SiteStatRepo interface {
	GetViewCount(ctx context.Context) (uint64, error)
	SaveViewCount(ctx context.Context, count uint64) error
}

type siteStatRepoImpl struct {
	db *gorm.DB
}

func NewSiteStatRepository(db *gorm.DB) SiteStatRepo {
	return &siteStatRepoImpl{db: db}
}

// GetViewCount 读取站点访问量，无记录时视为 0
func (s *siteStatRepoImpl) GetViewCount(ctx context.Context) (uint64, error) {
	var stat model.SiteStat
	err := s.db.WithContext(ctx).Order("id ASC").First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return stat.ViewCount, nil
}

// SaveViewCount 把 Redis 的运行值快照回 MySQL（写回任务调用）
func (s *siteStatRepoImpl) SaveViewCount(ctx context.Context, count uint64) error {
	var stat model.SiteStat
	err := s.db.WithContext(ctx).Order("id ASC").First(&stat).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.db.WithContext(ctx).Create(&model.SiteStat{ViewCount: count}).Error
	}

	return s.db.WithContext(ctx).
		Model(&model.SiteStat{}).
		Where("id = ?", stat.ID).
		Updates(map[string]interface{}{
			"view_count": count,
			"updated_at": time.Now(),
		}).Error
}
