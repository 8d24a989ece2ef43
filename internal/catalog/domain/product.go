package domain

import "time"

// Product ordering keys accepted by the list endpoint, DRF style: an
// optional leading "-" flips the direction.
const (
	OrderingPrice       = "price"
	OrderingCreatedDate = "created_date"
)

// Product represents a catalog product
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	ProductName   string         `json:"product_name" gorm:"size:100;not null"`
	Price         int            `json:"price" gorm:"not null"`
	Description   string         `json:"description"`
	SubCategoryID uint           `json:"subcategory_id" gorm:"not null"`
	SubCategory   SubCategory    `json:"-" gorm:"foreignKey:SubCategoryID"`
	ProductType   bool           `json:"product_type"`
	Article       uint           `json:"article" gorm:"uniqueIndex;not null"`
	Video         *string        `json:"video,omitempty"`
	CreatedDate   time.Time      `json:"created_date"` // set once at creation
	Images        []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductImage is a media reference attached to a product
type ProductImage struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProductID    uint   `json:"-" gorm:"not null"`
	ProductImage string `json:"product_image" gorm:"not null"`
}

// TableName specifies the table name
func (ProductImage) TableName() string {
	return "product_images"
}

// ProductQuery is the structured predicate for the product list: filter,
// search and ordering compose conjunctively on top of pagination.
type ProductQuery struct {
	Search        string // matched against name and article
	Ordering      string // "price", "-price", "created_date", "-created_date"
	CategoryID    *uint
	SubCategoryID *uint
	PriceMin      *int
	PriceMax      *int
	ProductType   *bool
	Limit         int
	Offset        int
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error) // preloads subcategory and images
	FindByArticle(article uint) (*Product, error)
	List(q ProductQuery) ([]Product, int64, error)
	Update(product *Product) error
	Delete(id uint) error
}

// ReviewEntry is the read shape the review subsystem exposes to catalog
// views: who said what about a product.
type ReviewEntry struct {
	Username    string
	Star        *int
	Text        string
	CreatedDate time.Time
}

// ReviewSource supplies derived review data for product representations.
type ReviewSource interface {
	// Summary returns the average of present star values rounded to two
	// decimals (0 when no stars exist) and the total review count.
	Summary(productID uint) (avg float64, count int64, err error)
	FindByProduct(productID uint) ([]ReviewEntry, error)
}
