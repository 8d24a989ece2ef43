package command

import (
	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// DeleteReviewCommand represents the intent to remove one's own review
type DeleteReviewCommand struct {
	ID     uint
	UserID uint
}

// DeleteReviewHandler handles review deletion
type DeleteReviewHandler struct {
	reviews domain.ReviewRepository
}

// NewDeleteReviewHandler creates a new delete review handler
func NewDeleteReviewHandler(reviews domain.ReviewRepository) *DeleteReviewHandler {
	return &DeleteReviewHandler{reviews: reviews}
}

// Handle executes the review deletion command
func (h *DeleteReviewHandler) Handle(cmd DeleteReviewCommand) error {
	review, err := h.reviews.FindByID(cmd.ID)
	if err != nil {
		return err
	}
	if review.UserID != cmd.UserID {
		return httperr.NotFound("review not found")
	}
	return h.reviews.Delete(review.ID)
}
