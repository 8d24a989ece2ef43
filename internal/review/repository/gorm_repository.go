package repository

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// GormReviewRepository implements ReviewRepository interface using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM review repository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts a new review into the database
func (r *GormReviewRepository) Create(review *domain.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// FindByID retrieves a review by ID with its reviewer
func (r *GormReviewRepository) FindByID(id uint) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("review not found")
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

// FindAll retrieves a page of reviews with their reviewers
func (r *GormReviewRepository) FindAll(limit, offset int) ([]domain.Review, int64, error) {
	var count int64
	if err := r.db.Model(&domain.Review{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []domain.Review
	if err := r.db.Preload("User").Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, count, nil
}

// FindByProduct retrieves all reviews of one product with their reviewers
func (r *GormReviewRepository) FindByProduct(productID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := r.db.Preload("User").Where("product_id = ?", productID).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list product reviews: %w", err)
	}
	return reviews, nil
}

// FindByUserAndProduct retrieves one user's review of one product
func (r *GormReviewRepository) FindByUserAndProduct(userID, productID uint) (*domain.Review, error) {
	var review domain.Review
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("review not found")
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

// Summary computes the rating aggregate for a product. The average is
// taken over reviews that carry a star, rounded to two decimals, while
// the count spans every review including text-only ones.
func (r *GormReviewRepository) Summary(productID uint) (domain.RatingSummary, error) {
	var summary domain.RatingSummary

	if err := r.db.Model(&domain.Review{}).
		Where("product_id = ?", productID).
		Count(&summary.ReviewCount).Error; err != nil {
		return summary, fmt.Errorf("failed to count product reviews: %w", err)
	}

	var avg *float64
	if err := r.db.Model(&domain.Review{}).
		Where("product_id = ?", productID).
		Select("AVG(star)").
		Scan(&avg).Error; err != nil {
		return summary, fmt.Errorf("failed to average product rating: %w", err)
	}
	if avg != nil {
		summary.AvgRating = math.Round(*avg*100) / 100
	}
	return summary, nil
}

// Update updates a review
func (r *GormReviewRepository) Update(review *domain.Review) error {
	if err := r.db.Save(review).Error; err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

// Delete removes a review
func (r *GormReviewRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return httperr.NotFound("review not found")
	}
	return nil
}

// AutoMigrate runs database migrations
func (r *GormReviewRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Review{})
}
