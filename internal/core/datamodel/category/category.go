package category

type Category struct {
	ID          int64  `gorm:"primaryKey;column:category_id"`
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description"`
	// UserID is nil for system-wide default categories.
	UserID    *int64 `gorm:"column:user_id"`
	IsDefault bool   `gorm:"column:is_default;default:false"`
}

func (Category) TableName() string {
	return "categories"
}
