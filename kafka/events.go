package kafka

import "time"

// Event types
const (
	EventTypeUserRegistered = "user.registered"
	EventTypeProductCreated = "product.created"
	EventTypeReviewCreated  = "review.created"
)

// Kafka topics
const (
	TopicUserRegistered = "user-registered"
	TopicProductCreated = "product-created"
	TopicReviewCreated  = "review-created"
)

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductCreatedEvent is published when a product enters the catalog
type ProductCreatedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Article   uint      `json:"article"`
	Price     int       `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// ReviewCreatedEvent is published when a review is submitted
type ReviewCreatedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ReviewID  uint      `json:"review_id"`
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	Star      *int      `json:"star"`
	Timestamp time.Time `json:"timestamp"`
}
