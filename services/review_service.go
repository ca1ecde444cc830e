package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
	"github.com/abhinandan-jain01/nearmart/models"
)

// ReviewService handles store reviews and keeps the retailer's rating
// aggregate current, which is what the nearby search sorts on.
type ReviewService struct {
	reviews   ReviewStore
	retailers RetailerStore
}

func NewReviewService(reviews ReviewStore, retailers RetailerStore) *ReviewService {
	return &ReviewService{reviews: reviews, retailers: retailers}
}

func (s *ReviewService) AddReview(ctx context.Context, customerID, retailerID primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Invalid("rating must be between 1 and 5")
	}
	if _, err := s.retailers.FindByUserID(ctx, retailerID); err != nil {
		return nil, err
	}

	review := &models.Review{
		RetailerID: retailerID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, err
	}

	average, total, err := s.reviews.RatingSummary(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	if err := s.retailers.SetRating(ctx, retailerID, average, int(total)); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, retailerID primitive.ObjectID, page, limit int64) ([]models.Review, int64, error) {
	if _, err := s.retailers.FindByUserID(ctx, retailerID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListByRetailer(ctx, retailerID, page, limit)
}
