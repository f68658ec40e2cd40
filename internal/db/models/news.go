package models

import "time"

// News represents an announcement shown on the public site once approved.
type News struct {
	// ID is the unique identifier for the news item.
	ID uint64 `gorm:"primaryKey"`
	// Title is the headline.
	Title string `gorm:"size:200;not null"`
	// Body is the sanitized HTML body.
	Body string `gorm:"type:text"`
	// PublishDate is the date shown on the public listing.
	PublishDate time.Time
	// Editorial carries authorship and approval state.
	Editorial `gorm:"embedded"`
}

// TableName specifies the database table name for the News model.
func (News) TableName() string {
	return "news"
}
