package repository

import (
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/review/domain"
)

// ReviewSource adapts the review repository to the read interface the
// catalog views consume.
type ReviewSource struct {
	reviews domain.ReviewRepository
}

// NewReviewSource creates a review source over the repository
func NewReviewSource(reviews domain.ReviewRepository) *ReviewSource {
	return &ReviewSource{reviews: reviews}
}

// Summary returns the rating aggregate for a product
func (s *ReviewSource) Summary(productID uint) (float64, int64, error) {
	summary, err := s.reviews.Summary(productID)
	if err != nil {
		return 0, 0, err
	}
	return summary.AvgRating, summary.ReviewCount, nil
}

// FindByProduct returns the review entries for a product
func (s *ReviewSource) FindByProduct(productID uint) ([]catalogdomain.ReviewEntry, error) {
	reviews, err := s.reviews.FindByProduct(productID)
	if err != nil {
		return nil, err
	}
	entries := make([]catalogdomain.ReviewEntry, 0, len(reviews))
	for _, rv := range reviews {
		entries = append(entries, catalogdomain.ReviewEntry{
			Username:    rv.User.Username,
			Star:        rv.Star,
			Text:        rv.Text,
			CreatedDate: rv.CreatedDate,
		})
	}
	return entries, nil
}
