package model

import (
	"time"
)

// SiteStat 站点访问量（单行，Redis 写 MySQL 兜底）
type SiteStat struct {
	ID        uint64 `gorm:"primaryKey"`
	ViewCount uint64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SiteStat) TableName() string {
	return "site_stats"
}
