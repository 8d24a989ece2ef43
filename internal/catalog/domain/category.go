package domain

// Category is the top level of the catalog hierarchy
type Category struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	CategoryName  string        `json:"category_name" gorm:"size:32;uniqueIndex;not null"`
	CategoryImage string        `json:"category_image"`
	Subcategories []SubCategory `json:"subcategories,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// SubCategory sits between a category and its products
type SubCategory struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	SubcategoryName string    `json:"subcategory_name" gorm:"size:32;uniqueIndex;not null"`
	CategoryID      uint      `json:"category_id" gorm:"not null"`
	Products        []Product `json:"products,omitempty" gorm:"foreignKey:SubCategoryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (SubCategory) TableName() string {
	return "sub_categories"
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error) // preloads subcategories
	FindByName(name string) (*Category, error)
	FindAll(limit, offset int) ([]Category, error)
	Count() (int64, error)
	Update(category *Category) error
	Delete(id uint) error
}

// SubCategoryRepository defines the contract for subcategory data access
type SubCategoryRepository interface {
	Create(subcategory *SubCategory) error
	FindByID(id uint) (*SubCategory, error) // preloads products with images
	FindByName(name string) (*SubCategory, error)
	FindAll(limit, offset int) ([]SubCategory, error)
	Count() (int64, error)
	Update(subcategory *SubCategory) error
	Delete(id uint) error
}
