package command

import (
	"time"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	ProductName   string
	Price         int
	Description   string
	SubCategoryID uint
	ProductType   bool
	Article       uint
	Video         *string
	Images        []string
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo          domain.ProductRepository
	subcategories domain.SubCategoryRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, subcategories domain.SubCategoryRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, subcategories: subcategories}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	fields := map[string]string{}
	if cmd.ProductName == "" {
		fields["product_name"] = "this field is required"
	}
	if cmd.Price < 0 {
		fields["price"] = "price must not be negative"
	}
	if cmd.Article == 0 {
		fields["article"] = "article must be a positive integer"
	}
	if cmd.SubCategoryID == 0 {
		fields["subcategory_id"] = "this field is required"
	}
	if len(fields) > 0 {
		return nil, httperr.ValidationFields("invalid product data", fields)
	}

	if _, err := h.subcategories.FindByID(cmd.SubCategoryID); err != nil {
		return nil, httperr.ValidationFields("invalid product data",
			map[string]string{"subcategory_id": "subcategory does not exist"})
	}
	if existing, _ := h.repo.FindByArticle(cmd.Article); existing != nil {
		return nil, httperr.ValidationFields("invalid product data",
			map[string]string{"article": "a product with that article already exists"})
	}

	product := &domain.Product{
		ProductName:   cmd.ProductName,
		Price:         cmd.Price,
		Description:   cmd.Description,
		SubCategoryID: cmd.SubCategoryID,
		ProductType:   cmd.ProductType,
		Article:       cmd.Article,
		Video:         cmd.Video,
		CreatedDate:   time.Now(),
	}
	for _, image := range cmd.Images {
		product.Images = append(product.Images, domain.ProductImage{ProductImage: image})
	}

	if err := h.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}
