package http

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// DateFormat renders dates day-month-year across the API.
const DateFormat = "02-01-2006"

// CategoryView is the list representation of a category
type CategoryView struct {
	ID            uint   `json:"id"`
	CategoryName  string `json:"category_name"`
	CategoryImage string `json:"category_image"`
}

// SubCategoryName is the nested subcategory representation inside a
// category detail.
type SubCategoryName struct {
	SubcategoryName string `json:"subcategory_name"`
}

// CategoryDetail is a category with its subcategories
type CategoryDetail struct {
	CategoryName  string            `json:"category_name"`
	Subcategories []SubCategoryName `json:"subcategories"`
}

// SubCategoryView is the list representation of a subcategory
type SubCategoryView struct {
	ID              uint   `json:"id"`
	SubcategoryName string `json:"subcategory_name"`
}

// SubCategoryDetail is a subcategory with its product cards
type SubCategoryDetail struct {
	SubcategoryName string        `json:"subcategory_name"`
	Products        []ProductCard `json:"products"`
}

// ProductCard is the compact product representation used in listings,
// subcategory details, cart items and favorites.
type ProductCard struct {
	ID          uint     `json:"id"`
	Images      []string `json:"images"`
	ProductName string   `json:"product_name"`
	Price       int      `json:"price"`
	AvgRating   float64  `json:"avg_rating"`
	ReviewCount int64    `json:"review_count"`
}

// ReviewView is the review representation nested in a product detail
type ReviewView struct {
	User        ReviewUser `json:"user"`
	Star        *int       `json:"star"`
	Text        string     `json:"text"`
	CreatedDate string     `json:"created_date"`
}

// ReviewUser names the reviewer
type ReviewUser struct {
	Username string `json:"username"`
}

// ProductDetail is the full product representation
type ProductDetail struct {
	Subcategory SubCategoryName `json:"subcategory"`
	Images      []string        `json:"images"`
	ProductName string          `json:"product_name"`
	ProductType bool            `json:"product_type"`
	Price       int             `json:"price"`
	AvgRating   float64         `json:"avg_rating"`
	ReviewCount int64           `json:"review_count"`
	Article     uint            `json:"article"`
	Description string          `json:"description"`
	Video       *string         `json:"video"`
	CreatedDate string          `json:"created_date"`
	Reviews     []ReviewView    `json:"reviews"`
}

// NewCategoryView builds the list representation of a category
func NewCategoryView(c domain.Category) CategoryView {
	return CategoryView{ID: c.ID, CategoryName: c.CategoryName, CategoryImage: c.CategoryImage}
}

// NewCategoryDetail builds a category detail with its subcategories
func NewCategoryDetail(c *domain.Category) CategoryDetail {
	detail := CategoryDetail{
		CategoryName:  c.CategoryName,
		Subcategories: make([]SubCategoryName, 0, len(c.Subcategories)),
	}
	for _, sub := range c.Subcategories {
		detail.Subcategories = append(detail.Subcategories, SubCategoryName{SubcategoryName: sub.SubcategoryName})
	}
	return detail
}

// NewProductCard builds a product card from a product and its rating
// summary.
func NewProductCard(p domain.Product, avg float64, count int64) ProductCard {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.ProductImage)
	}
	return ProductCard{
		ID:          p.ID,
		Images:      images,
		ProductName: p.ProductName,
		Price:       p.Price,
		AvgRating:   avg,
		ReviewCount: count,
	}
}

// BuildProductCards builds cards for a slice of products, pulling each
// rating summary from the review source.
func BuildProductCards(products []domain.Product, reviews domain.ReviewSource) ([]ProductCard, error) {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		avg, count, err := reviews.Summary(p.ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, NewProductCard(p, avg, count))
	}
	return cards, nil
}

// NewProductDetail assembles the full product representation from the
// product record and its reviews.
func NewProductDetail(p *domain.Product, avg float64, count int64, entries []domain.ReviewEntry) ProductDetail {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.ProductImage)
	}
	reviews := make([]ReviewView, 0, len(entries))
	for _, e := range entries {
		reviews = append(reviews, ReviewView{
			User:        ReviewUser{Username: e.Username},
			Star:        e.Star,
			Text:        e.Text,
			CreatedDate: e.CreatedDate.Format(DateFormat),
		})
	}
	return ProductDetail{
		Subcategory: SubCategoryName{SubcategoryName: p.SubCategory.SubcategoryName},
		Images:      images,
		ProductName: p.ProductName,
		ProductType: p.ProductType,
		Price:       p.Price,
		AvgRating:   avg,
		ReviewCount: count,
		Article:     p.Article,
		Description: p.Description,
		Video:       p.Video,
		CreatedDate: p.CreatedDate.Format(DateFormat),
		Reviews:     reviews,
	}
}
