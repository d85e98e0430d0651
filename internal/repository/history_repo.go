package repository

import (
	"Sundial/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepo interface {
	Bump(ctx context.Context, date time.Time) error
	GetRecent(ctx context.Context, n int) ([]*model.DailyHistory, error)
	GetPage(ctx context.Context, page, perPage int) ([]*model.DailyHistory, int64, error)
}

type historyRepoImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepo {
	return &historyRepoImpl{db: db}
}

// Bump 对指定日期的桶做原子 Upsert 自增。
// 计数在存储层完成，N 个并发调用最终净增 N，不走应用侧读改写。
func (s *historyRepoImpl) Bump(ctx context.Context, date time.Time) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":      gorm.Expr("count + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&model.DailyHistory{Date: date, Count: 1}).Error
}

// GetRecent 取最近 n 个日期桶，按日期降序（最新在前）
func (s *historyRepoImpl) GetRecent(ctx context.Context, n int) ([]*model.DailyHistory, error) {
	histories := make([]*model.DailyHistory, 0, n)
	result := s.db.WithContext(ctx).
		Order("date DESC").
		Limit(n).
		Find(&histories)
	if result.Error != nil {
		return nil, result.Error
	}
	return histories, nil
}

// GetPage 按日期降序分页，返回当页数据与总条数
func (s *historyRepoImpl) GetPage(ctx context.Context, page, perPage int) ([]*model.DailyHistory, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.DailyHistory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	histories := make([]*model.DailyHistory, 0, perPage)
	result := s.db.WithContext(ctx).
		Order("date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&histories)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return histories, total, nil
}
