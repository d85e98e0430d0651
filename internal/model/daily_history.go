package model

import (
	"time"
)

// DailyHistory 每个自然日一条的涂抹计数桶
type DailyHistory struct {
	ID        uint64    `gorm:"primaryKey"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_history_date;column:date"`
	Count     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DailyHistory) TableName() string {
	return "daily_histories"
}
