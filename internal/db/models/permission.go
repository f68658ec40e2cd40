package models

import "time"

// Permission grants a group a set of capabilities on one content category.
// The five capability flags are independent; a user's effective capability is
// the logical OR of each flag across every grant held by every group the
// user belongs to. At most one row exists per (group, category) pair.
type Permission struct {
	// ID is the unique identifier for the grant.
	ID uint `gorm:"primaryKey"`
	// GroupID is the group holding this grant.
	GroupID uint `gorm:"not null;uniqueIndex:idx_group_category"`
	// CategoryID is the content category the grant applies to.
	CategoryID uint `gorm:"not null;uniqueIndex:idx_group_category"`
	// View allows reading unapproved content in the category.
	View bool
	// Submit allows creating new content in the category.
	Submit bool
	// Revise allows updating existing content in the category.
	Revise bool
	// Exclude allows deleting content in the category.
	Exclude bool
	// Approve allows approving content for public visibility.
	Approve bool
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, its grants are removed (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// Category is the associated category (loaded via foreign key).
	// When a category is deleted, grants on it are removed (CASCADE).
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the grant was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the grant was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
