package model

import (
	"time"
)

// Counter 全局唯一的涂抹计数/连续打卡记录（单例行，所有请求共享）
type Counter struct {
	ID               uint64     `gorm:"primaryKey"`
	ApplicationCount uint64     `gorm:"not null;default:0"`
	LastAppliedAt    *time.Time `gorm:"column:last_applied_at"`
	Streak           int        `gorm:"not null;default:0"`
	LastStreakDate   *time.Time `gorm:"type:date;column:last_streak_date"`
	Version          uint64     `gorm:"not null;default:0"` // 乐观锁版本号
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Counter) TableName() string {
	return "counters"
}
