package query

import (
	"github.com/tair/storefront/internal/review/domain"
)

// GetReviewQuery represents the query for one review
type GetReviewQuery struct {
	ID uint
}

// GetReviewHandler handles the review detail query
type GetReviewHandler struct {
	reviews domain.ReviewRepository
}

// NewGetReviewHandler creates a new get review handler
func NewGetReviewHandler(reviews domain.ReviewRepository) *GetReviewHandler {
	return &GetReviewHandler{reviews: reviews}
}

// Handle executes the get review query
func (h *GetReviewHandler) Handle(q GetReviewQuery) (*domain.Review, error) {
	return h.reviews.FindByID(q.ID)
}
