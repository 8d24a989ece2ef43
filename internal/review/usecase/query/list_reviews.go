package query

import (
	"github.com/tair/storefront/internal/review/domain"
)

// ListReviewsQuery represents the paginated review listing
type ListReviewsQuery struct {
	Limit  int
	Offset int
}

// ListReviewsHandler handles the review list query
type ListReviewsHandler struct {
	reviews domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(reviews domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{reviews: reviews}
}

// Handle executes the list reviews query
func (h *ListReviewsHandler) Handle(q ListReviewsQuery) ([]domain.Review, int64, error) {
	return h.reviews.FindAll(q.Limit, q.Offset)
}
