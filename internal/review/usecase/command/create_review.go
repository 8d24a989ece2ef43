package command

import (
	"time"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// CreateReviewCommand represents the intent to review a product
type CreateReviewCommand struct {
	UserID    uint
	ProductID uint
	Star      *int
	Text      string
}

// CreateReviewHandler handles review creation
type CreateReviewHandler struct {
	reviews  domain.ReviewRepository
	products catalogdomain.ProductRepository
}

// NewCreateReviewHandler creates a new create review handler
func NewCreateReviewHandler(reviews domain.ReviewRepository, products catalogdomain.ProductRepository) *CreateReviewHandler {
	return &CreateReviewHandler{reviews: reviews, products: products}
}

// Handle executes the review creation command
func (h *CreateReviewHandler) Handle(cmd CreateReviewCommand) (*domain.Review, error) {
	if cmd.Star != nil && (*cmd.Star < domain.MinStar || *cmd.Star > domain.MaxStar) {
		return nil, httperr.ValidationFields("invalid star rating", map[string]string{
			"star": "star must be between 1 and 5",
		})
	}

	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		if httperr.From(err).Kind == httperr.KindNotFound {
			return nil, httperr.Validation("product does not exist")
		}
		return nil, err
	}

	if _, err := h.reviews.FindByUserAndProduct(cmd.UserID, cmd.ProductID); err == nil {
		return nil, httperr.Validation("you have already reviewed this product")
	} else if httperr.From(err).Kind != httperr.KindNotFound {
		return nil, err
	}

	review := &domain.Review{
		UserID:      cmd.UserID,
		ProductID:   cmd.ProductID,
		Star:        cmd.Star,
		Text:        cmd.Text,
		CreatedDate: time.Now(),
	}
	if err := h.reviews.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}
