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

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(m *Mongo) *ProductStore {
	return &ProductStore{coll: m.Collection("products")}
}

// ProductQuery composes the catalog listing filters.
type ProductQuery struct {
	CategoryID      *primitive.ObjectID
	MinPrice        *float64
	MaxPrice        *float64
	Fabric          string
	Color           string
	Search          string
	Sort            string // price_asc, price_desc, rating, newest
	Page            int
	Limit           int
	IncludeInactive bool
}

func (q ProductQuery) filter() bson.M {
	filter := bson.M{}
	if !q.IncludeInactive {
		filter["active"] = true
	}
	if q.CategoryID != nil {
		filter["categoryId"] = *q.CategoryID
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	if q.Fabric != "" {
		filter["fabric"] = q.Fabric
	}
	if q.Color != "" {
		filter["colors"] = q.Color
	}
	if q.Search != "" {
		filter["name"] = bson.M{"$regex": q.Search, "$options": "i"}
	}
	return filter
}

func (q ProductQuery) sort() bson.D {
	switch q.Sort {
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	case "rating":
		return bson.D{{Key: "rating.average", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// List returns one page of products plus the total match count.
func (s *ProductStore) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	filter := q.filter()

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(q.sort()).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &product, nil
}

func (s *ProductStore) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *ProductStore) Insert(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		return wrapErr(err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *ProductStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock decrements conditionally: the write matches only while
// stock >= quantity, so a concurrent sale can never push stock below
// zero. ErrStockConflict means the guard failed for an existing product.
func (s *ProductStore) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"stock": -quantity}})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		if n, err := s.coll.CountDocuments(ctx, bson.M{"_id": id}); err == nil && n == 0 {
			return ErrNotFound
		}
		return ErrStockConflict
	}
	return nil
}

func (s *ProductStore) SetRating(ctx context.Context, id primitive.ObjectID, rating models.Rating) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "updatedAt": time.Now()}})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "stock", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"active": true, "stock": bson.M{"$lt": threshold}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
