package models

import "time"

// GroupMember represents the many-to-many relationship between users and groups.
// Memberships are managed by administrators; they are the only path by which
// a non-administrator user gains capabilities on a content category.
type GroupMember struct {
	// UserID is the ID of the user in this membership.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// GroupID is the ID of the group in this membership.
	GroupID uint `gorm:"primaryKey;column:group_id"`
	// User is the associated user (loaded via foreign key).
	// When a user is deleted, all their memberships are removed (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Group is the associated group (loaded via foreign key).
	// When a group is deleted, all memberships in that group are removed (CASCADE).
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the user was added to the group (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the GroupMember model.
func (GroupMember) TableName() string {
	return "group_members"
}
