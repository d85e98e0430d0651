package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ApplyEventRepo interface {
	SaveEvent(ctx context.Context, event *ApplyEvent) error
	GetRecent(ctx context.Context, limit int) ([]*ApplyEvent, error)
}

type applyEventRepoImpl struct {
	col *mongo.Collection
}

func NewApplyEventRepo(db *mongo.Database) ApplyEventRepo {
	return &applyEventRepoImpl{
		col: db.Collection("apply_event"),
	}
}

// SaveEvent 追加一条审计事件
func (s *applyEventRepoImpl) SaveEvent(ctx context.Context, event *ApplyEvent) error {
	_, err := s.col.InsertOne(ctx, event)
	return err
}

// GetRecent 按时间降序取最近 limit 条事件
func (s *applyEventRepoImpl) GetRecent(ctx context.Context, limit int) ([]*ApplyEvent, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "applied_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var events []*ApplyEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}
