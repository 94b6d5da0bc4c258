package catalog

import "time"

// Category is a public, flat product category
type Category struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(100);not null"`
	Slug         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	ImageURL     string `gorm:"type:varchar(500)"`
	DisplayOrder int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}
