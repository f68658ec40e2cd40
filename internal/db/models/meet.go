package models

import "time"

// Meet represents a swim meet listed on the public site once approved.
type Meet struct {
	// ID is the unique identifier for the meet.
	ID uint64 `gorm:"primaryKey"`
	// Title is the meet name.
	Title string `gorm:"size:200;not null"`
	// Venue is where the meet takes place.
	Venue string `gorm:"size:200"`
	// FromDate is the first day of the meet.
	FromDate time.Time `gorm:"not null"`
	// ToDate is the last day of the meet.
	ToDate time.Time
	// EntryDeadline is the last day entries are accepted.
	EntryDeadline *time.Time
	// Body is the sanitized HTML description (program, directions, fees).
	Body string `gorm:"type:text"`
	// Editorial carries authorship and approval state.
	Editorial `gorm:"embedded"`
}

// TableName specifies the database table name for the Meet model.
func (Meet) TableName() string {
	return "meets"
}
