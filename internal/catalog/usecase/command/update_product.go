package command

import (
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// UpdateProductCommand represents the command to update a product. The
// creation date is immutable and never touched here.
type UpdateProductCommand struct {
	ID            uint
	ProductName   string
	Price         *int
	Description   string
	SubCategoryID uint
	ProductType   *bool
	Article       uint
	Video         *string
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo          domain.ProductRepository
	subcategories domain.SubCategoryRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, subcategories domain.SubCategoryRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, subcategories: subcategories}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.ProductName != "" {
		product.ProductName = cmd.ProductName
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, httperr.ValidationFields("invalid product data",
				map[string]string{"price": "price must not be negative"})
		}
		product.Price = *cmd.Price
	}
	if cmd.Description != "" {
		product.Description = cmd.Description
	}
	if cmd.SubCategoryID != 0 {
		if _, err := h.subcategories.FindByID(cmd.SubCategoryID); err != nil {
			return nil, httperr.ValidationFields("invalid product data",
				map[string]string{"subcategory_id": "subcategory does not exist"})
		}
		product.SubCategoryID = cmd.SubCategoryID
	}
	if cmd.ProductType != nil {
		product.ProductType = *cmd.ProductType
	}
	if cmd.Article != 0 && cmd.Article != product.Article {
		if existing, _ := h.repo.FindByArticle(cmd.Article); existing != nil {
			return nil, httperr.ValidationFields("invalid product data",
				map[string]string{"article": "a product with that article already exists"})
		}
		product.Article = cmd.Article
	}
	if cmd.Video != nil {
		product.Video = cmd.Video
	}

	if err := h.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
