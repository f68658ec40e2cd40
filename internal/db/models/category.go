package models

import "time"

// Category represents a named content section of the site (e.g. "news",
// "meet"). Categories carry a manual display order; order values may drift
// after inserts and deletes and are normalized back to a dense 1..N sequence
// by the reorder routine.
type Category struct {
	// ID is the unique identifier for the category.
	ID uint `gorm:"primaryKey"`
	// Name is the display name of the section.
	Name string `gorm:"size:100;not null"`
	// Link is the URL slug identifying the section (e.g. "news").
	Link string `gorm:"size:100;not null;index"`
	// Order is the manual display rank. Zero hides the category from ordered
	// listings; positive values are normalized to 1..N by Reorder.
	Order int `gorm:"column:display_order;not null;default:0"`
	// Role is the coarse visibility flag restricting who sees this section
	// in the back office ("member" or "administrator").
	Role string `gorm:"size:20;not null;default:'member'"`
	// CreatedAt is the timestamp when the category was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the category was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Category model.
func (Category) TableName() string {
	return "categories"
}
