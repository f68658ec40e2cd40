package models

import "time"

// Live represents a live-stream entry. The public listing shows entries
// that are currently on air or already finished (for replay links), in
// manual rank order. Order values are normalized by the reorder routine.
type Live struct {
	// ID is the unique identifier for the live entry.
	ID uint64 `gorm:"primaryKey"`
	// Title is the stream title.
	Title string `gorm:"size:200;not null"`
	// URL is the stream or replay link.
	URL string `gorm:"size:500;not null"`
	// FromDate is when the stream starts; it breaks order ties.
	FromDate time.Time `gorm:"not null"`
	// OnAir marks the stream as currently broadcasting.
	OnAir bool `gorm:"not null;default:false"`
	// Finished marks the stream as over, keeping the replay link public.
	Finished bool `gorm:"not null;default:false"`
	// Order is the manual display rank. Zero hides the entry from ordered
	// listings; positive values are normalized to 1..N by Reorder.
	Order int `gorm:"column:display_order;not null;default:0"`
	// Editorial carries authorship and approval state.
	Editorial `gorm:"embedded"`
}

// TableName specifies the database table name for the Live model.
func (Live) TableName() string {
	return "lives"
}
