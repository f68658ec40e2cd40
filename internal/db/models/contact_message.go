// Package models contains database model definitions.
package models

import "time"

// ContactMessage stores a submission from the public contact form.
// Messages are kept for audit even when the outbound notification to the
// office mailbox fails.
type ContactMessage struct {
	// ID is the unique identifier for the message.
	ID uint64 `gorm:"primaryKey"`
	// Name is the sender's name.
	Name string `gorm:"size:100;not null"`
	// Email is the sender's reply address.
	Email string `gorm:"size:255;not null"`
	// Subject is the message subject line.
	Subject string `gorm:"size:200"`
	// Body is the sanitized message text.
	Body string `gorm:"type:text;not null"`
	// CreatedAt is the timestamp when the message arrived (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ContactMessage model.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
