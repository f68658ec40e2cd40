package models

import "time"

// Record represents a federation record time. The public record tables are
// partitioned by the three integer-coded dimensions (Category, Poolsize,
// Sex); a record appears publicly only when both Approved and Valid are
// true. Valid lets a superseded record be kept for history without showing
// it in the current tables.
type Record struct {
	// ID is the unique identifier for the record.
	ID uint64 `gorm:"primaryKey"`
	// Category is the integer-coded age or classification bracket.
	// Distinct from the Category content section model.
	Category int `gorm:"not null;index:idx_record_partition"`
	// Poolsize is the integer-coded course (e.g. 1 = 25m, 2 = 50m).
	Poolsize int `gorm:"not null;index:idx_record_partition"`
	// Sex is the integer-coded sex dimension of the event.
	Sex int `gorm:"not null;index:idx_record_partition"`
	// Event is the event label (e.g. "100m Freestyle").
	Event string `gorm:"size:100;not null"`
	// HolderName is the record holder's name.
	HolderName string `gorm:"size:100;not null"`
	// Time is the recorded time, formatted as the federation displays it.
	Time string `gorm:"size:20;not null"`
	// MeetName is the meet where the record was set.
	MeetName string `gorm:"size:200"`
	// RecordDate is the day the record was set.
	RecordDate time.Time
	// Valid marks the record as current; superseded records keep Valid false.
	Valid bool `gorm:"not null;default:true"`
	// Editorial carries authorship and approval state.
	Editorial `gorm:"embedded"`
}

// TableName specifies the database table name for the Record model.
func (Record) TableName() string {
	return "records"
}
