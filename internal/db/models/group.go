package models

import "time"

// Group represents a named collection of users.
// Groups own permission grants; a user's effective capabilities per content
// category are the union of the grants held by every group they belong to.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// Name is the display name of the group (e.g. "news editors").
	Name string `gorm:"size:100;not null;unique"`
	// Description provides a human-readable explanation of the group's purpose.
	Description string `gorm:"size:255"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Group model.
func (Group) TableName() string {
	return "groups"
}
