package models

import "time"

// Seminar represents a training seminar or course. Public listings group
// seminars by fiscal year; the fiscal year of a seminar is derived from
// FromDate using the April 1 to March 31 window.
type Seminar struct {
	// ID is the unique identifier for the seminar.
	ID uint64 `gorm:"primaryKey"`
	// Title is the seminar name.
	Title string `gorm:"size:200;not null"`
	// Venue is where the seminar takes place.
	Venue string `gorm:"size:200"`
	// FromDate is the first day of the seminar; it determines the fiscal year.
	FromDate time.Time `gorm:"not null;index"`
	// ToDate is the last day of the seminar.
	ToDate time.Time
	// Capacity is the maximum number of attendees; zero means unlimited.
	Capacity int
	// Body is the sanitized HTML description.
	Body string `gorm:"type:text"`
	// Editorial carries authorship and approval state.
	Editorial `gorm:"embedded"`
}

// TableName specifies the database table name for the Seminar model.
func (Seminar) TableName() string {
	return "seminars"
}
