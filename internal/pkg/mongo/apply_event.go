package mongo

import (
	"time"
)

// ApplyEvent 每次成功涂抹追加一条的审计事件
type ApplyEvent struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	AppliedAt        time.Time `bson:"applied_at" json:"appliedAt"`
	ApplicationCount uint64    `bson:"application_count" json:"applicationCount"` // 写入后的累计次数
	Streak           int       `bson:"streak" json:"streak"`                      // 写入后的连续天数
	StreakDate       string    `bson:"streak_date" json:"streakDate"`             // YYYY-MM-DD
	TraceID          string    `bson:"trace_id,omitempty" json:"traceId"`
}
