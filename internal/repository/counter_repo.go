package repository

import (
	"Sundial/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrVersionConflict 乐观锁冲突：记录已被并发写入者推进
var ErrVersionConflict = errors.New("counter version conflict")

type CounterRepo interface {
	GetOrCreate(ctx context.Context) (*model.Counter, error)
	UpdateWithVersion(ctx context.Context, counter *model.Counter) error
}

type counterRepoImpl struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) CounterRepo {
	return &counterRepoImpl{db: db}
}

// GetOrCreate 读取单例记录，不存在则创建零值记录。
// 冷启动时并发首次访问可能产生多余的行，读取端始终按 id 升序取第一条，
// 多余的行不会再被任何读写路径触达。
func (s *counterRepoImpl) GetOrCreate(ctx context.Context) (*model.Counter, error) {
	var counter model.Counter
	err := s.db.WithContext(ctx).Order("id ASC").First(&counter).Error
	if err == nil {
		return &counter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err = s.db.WithContext(ctx).Create(&counter).Error; err != nil {
		return nil, err
	}

	// 重新按稳定顺序读取，保证并发创建时所有调用方收敛到同一行
	err = s.db.WithContext(ctx).Order("id ASC").First(&counter).Error
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

// UpdateWithVersion 条件写回：仅当版本号未被并发推进时生效
func (s *counterRepoImpl) UpdateWithVersion(ctx context.Context, counter *model.Counter) error {
	result := s.db.WithContext(ctx).
		Model(&model.Counter{}).
		Where("id = ? AND version = ?", counter.ID, counter.Version).
		Updates(map[string]interface{}{
			"application_count": counter.ApplicationCount,
			"last_applied_at":   counter.LastAppliedAt,
			"streak":            counter.Streak,
			"last_streak_date":  counter.LastStreakDate,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	counter.Version++
	return nil
}
