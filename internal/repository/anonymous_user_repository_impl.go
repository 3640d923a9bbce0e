package repository

import (
	"context"
	"errors"
	"time"

	"healthspot/internal/domain/entity"
	domainRepo "healthspot/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type anonymousUserRepository struct {
	collection *mongo.Collection
}

func NewAnonymousUserRepository(db *mongo.Database) domainRepo.AnonymousUserRepository {
	return &anonymousUserRepository{collection: db.Collection("anonymous_users")}
}

func (r *anonymousUserRepository) FindByID(ctx context.Context, anonymousID string) (*entity.AnonymousUser, error) {
	var user entity.AnonymousUser
	err := r.collection.FindOne(ctx, bson.M{"anonymousId": anonymousID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *anonymousUserRepository) Create(ctx context.Context, user *entity.AnonymousUser) error {
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *anonymousUserRepository) TouchLastAccess(ctx context.Context, anonymousID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"anonymousId": anonymousID},
		bson.M{"$set": bson.M{"lastAccess": time.Now()}},
	)
	return err
}
