package command

import (
	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// UpdateReviewCommand represents the intent to edit one's own review
type UpdateReviewCommand struct {
	ID     uint
	UserID uint
	Star   *int
	Text   string
}

// UpdateReviewHandler handles review updates
type UpdateReviewHandler struct {
	reviews domain.ReviewRepository
}

// NewUpdateReviewHandler creates a new update review handler
func NewUpdateReviewHandler(reviews domain.ReviewRepository) *UpdateReviewHandler {
	return &UpdateReviewHandler{reviews: reviews}
}

// Handle executes the review update command. A review that belongs to
// another user is reported as absent.
func (h *UpdateReviewHandler) Handle(cmd UpdateReviewCommand) (*domain.Review, error) {
	review, err := h.reviews.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}
	if review.UserID != cmd.UserID {
		return nil, httperr.NotFound("review not found")
	}

	if cmd.Star != nil && (*cmd.Star < domain.MinStar || *cmd.Star > domain.MaxStar) {
		return nil, httperr.ValidationFields("invalid star rating", map[string]string{
			"star": "star must be between 1 and 5",
		})
	}

	review.Star = cmd.Star
	review.Text = cmd.Text
	if err := h.reviews.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}
