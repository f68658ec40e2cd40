package models

import "time"

// Editorial carries the authorship and approval state shared by every
// content entity. An entity is visible on the public site only when
// Approved is true; any revision resets Approved and clears ApprovedUserID,
// so approval must be explicitly re-earned after every edit.
type Editorial struct {
	// CreatedUserID is the user who created the entity.
	CreatedUserID uint64 `gorm:"not null"`
	// RevisedUserID is the user who last updated the entity, if any.
	RevisedUserID *uint64
	// ApprovedUserID is the user who approved the current revision, if any.
	ApprovedUserID *uint64
	// Approved marks the current revision as cleared for public display.
	Approved bool `gorm:"not null;default:false"`
	// CreatedAt is the timestamp when the entity was created (managed by GORM).
	CreatedAt time.Time
	// RevisedAt is the timestamp of the last update, if any.
	RevisedAt *time.Time
	// ApprovedAt is the timestamp of the approval, if any.
	ApprovedAt *time.Time
}

// MarkRevised records an update by the given user and withdraws approval.
func (e *Editorial) MarkRevised(userID uint64, now time.Time) {
	e.RevisedUserID = &userID
	e.RevisedAt = &now
	e.Approved = false
	e.ApprovedUserID = nil
	e.ApprovedAt = nil
}

// MarkApproved records an approval by the given user.
func (e *Editorial) MarkApproved(userID uint64, now time.Time) {
	e.Approved = true
	e.ApprovedUserID = &userID
	e.ApprovedAt = &now
}
