package repository

import (
	"context"

	"healthspot/internal/domain/entity"
	domainRepo "healthspot/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type searchHistoryRepository struct {
	collection *mongo.Collection
}

func NewSearchHistoryRepository(db *mongo.Database) domainRepo.SearchHistoryRepository {
	return &searchHistoryRepository{collection: db.Collection("search_history")}
}

func (r *searchHistoryRepository) Create(ctx context.Context, record *entity.SearchHistory) error {
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *searchHistoryRepository) FindRecent(ctx context.Context, anonymousID string, limit int) ([]entity.SearchHistory, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"anonymousId": anonymousID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []entity.SearchHistory
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
