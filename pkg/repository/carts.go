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

type CartStore struct {
	coll *mongo.Collection
}

func NewCartStore(m *Mongo) *CartStore {
	return &CartStore{coll: m.Collection("carts")}
}

func (s *CartStore) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &cart, nil
}

// ReplaceItems writes the whole item list, creating the cart document
// lazily on first use.
func (s *CartStore) ReplaceItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true))
	return wrapErr(err)
}

// Clear empties the cart. A missing cart document counts as cleared.
func (s *CartStore) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}})
	return wrapErr(err)
}
