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

type ReviewStore struct {
	coll *mongo.Collection
}

func NewReviewStore(m *Mongo) *ReviewStore {
	return &ReviewStore{coll: m.Collection("reviews")}
}

func (s *ReviewStore) Insert(ctx context.Context, review *models.Review) error {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, review)
	if err != nil {
		return wrapErr(err)
	}
	review.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *ReviewStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &review, nil
}

func (s *ReviewStore) Update(ctx context.Context, id primitive.ObjectID, rating int, comment string) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "comment": comment, "updatedAt": time.Now()}})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ReviewStore) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Aggregate recomputes the product's review average and count from the
// reviews that remain. Zero values when none do.
func (s *ReviewStore) Aggregate(ctx context.Context, productID primitive.ObjectID) (models.Rating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Rating{}, err
	}
	defer cursor.Close(ctx)

	var results []models.Rating
	if err = cursor.All(ctx, &results); err != nil {
		return models.Rating{}, err
	}
	if len(results) == 0 {
		return models.Rating{}, nil
	}
	return results[0], nil
}
