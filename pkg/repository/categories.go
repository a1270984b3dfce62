package repository

import (
	"context"
	"time"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryStore struct {
	coll *mongo.Collection
}

func NewCategoryStore(m *Mongo) *CategoryStore {
	return &CategoryStore{coll: m.Collection("categories")}
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &category, nil
}

func (s *CategoryStore) Insert(ctx context.Context, category *models.Category) error {
	category.CreatedAt = time.Now()
	res, err := s.coll.InsertOne(ctx, category)
	if err != nil {
		return wrapErr(err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *CategoryStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
