package domain

import "time"

// Loyalty statuses
const (
	StatusGold   = "gold"
	StatusSilver = "silver"
	StatusBronze = "bronze"
	StatusSimple = "simple"
)

// Age bounds enforced on registration and profile updates.
const (
	MinAge = 16
	MaxAge = 70
)

// ValidStatus reports whether s is one of the closed loyalty statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusGold, StatusSilver, StatusBronze, StatusSimple:
		return true
	}
	return false
}

// User represents the user account entity (domain model)
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"` // Never expose password in JSON
	Age          *int      `json:"age,omitempty"`
	Status       string    `json:"status" gorm:"not null;default:'simple'"`
	PhoneNumber  string    `json:"phone_number" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	DateRegister time.Time `json:"date_register"` // set once at registration
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByEmail(email string) (*User, error)
	Update(user *User) error
	Delete(id uint) error
	Count() (int64, error)
}
