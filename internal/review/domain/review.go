package domain

import (
	"time"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	identitydomain "github.com/tair/storefront/internal/identity/domain"
)

// Star rating bounds. The star itself is optional, text-only reviews
// carry a null rating and stay out of the average.
const (
	MinStar = 1
	MaxStar = 5
)

// Review represents one user's review of a product. A user reviews a
// given product at most once.
type Review struct {
	ID          uint                  `json:"id" gorm:"primaryKey"`
	UserID      uint                  `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_user_product"`
	User        identitydomain.User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID   uint                  `json:"product_id" gorm:"not null;uniqueIndex:idx_reviews_user_product"`
	Product     catalogdomain.Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Star        *int                  `json:"star"`
	Text        string                `json:"text"`
	CreatedDate time.Time             `json:"created_date"`
	CreatedAt   time.Time             `json:"-"`
	UpdatedAt   time.Time             `json:"-"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}

// RatingSummary is the aggregate the product views render.
type RatingSummary struct {
	AvgRating   float64
	ReviewCount int64
}

// ReviewRepository defines the contract for review data access
type ReviewRepository interface {
	Create(review *Review) error
	FindByID(id uint) (*Review, error) // preloads the reviewer
	FindAll(limit, offset int) ([]Review, int64, error)
	FindByProduct(productID uint) ([]Review, error)
	FindByUserAndProduct(userID, productID uint) (*Review, error)
	Summary(productID uint) (RatingSummary, error)
	Update(review *Review) error
	Delete(id uint) error
}
