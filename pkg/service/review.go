package service

import (
	"context"
	"errors"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ReviewService struct {
	reviews  ReviewStore
	products ProductStore
	logger   *zap.Logger
}

func NewReviewService(reviews ReviewStore, products ProductStore, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, logger: logger}
}

// Create posts a user's single review of a product. The unique
// (user, product) index turns a second attempt into ErrDuplicateReview.
func (s *ReviewService) Create(ctx context.Context, userID primitive.ObjectID, userName string, productID primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	if err := s.recompute(ctx, productID); err != nil {
		s.logger.Warn("failed to recompute product rating",
			zap.String("product_id", productID.Hex()), zap.Error(err))
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, userID, reviewID primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrForbidden
	}

	if err := s.reviews.Update(ctx, reviewID, rating, comment); err != nil {
		return nil, err
	}
	review.Rating = rating
	review.Comment = comment

	if err := s.recompute(ctx, review.ProductID); err != nil {
		s.logger.Warn("failed to recompute product rating",
			zap.String("product_id", review.ProductID.Hex()), zap.Error(err))
	}
	return review, nil
}

// Delete removes a review; admins may remove anyone's.
func (s *ReviewService) Delete(ctx context.Context, userID primitive.ObjectID, isAdmin bool, reviewID primitive.ObjectID) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if review.UserID != userID && !isAdmin {
		return ErrForbidden
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	return s.recompute(ctx, review.ProductID)
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

// recompute refreshes the product's review aggregate from what remains.
func (s *ReviewService) recompute(ctx context.Context, productID primitive.ObjectID) error {
	rating, err := s.reviews.Aggregate(ctx, productID)
	if err != nil {
		return err
	}
	return s.products.SetRating(ctx, productID, rating)
}
