// Package news provides CRUD and approval operations for news items.
package news

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

var (
	// ErrNewsNotFound is returned when a news item is not found.
	ErrNewsNotFound = errors.New("news not found")
	// ErrTitleEmpty is returned when the title is empty.
	ErrTitleEmpty = errors.New("news title cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves all news items, newest publish date first.
func GetAll(db *gorm.DB) ([]models.News, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var items []models.News
	result := db.Order("publish_date DESC, id DESC").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// GetByID retrieves a news item by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.News, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var item models.News
	result := db.First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, result.Error
	}

	return &item, nil
}

// PublicList retrieves approved news items, newest publish date first.
func PublicList(db *gorm.DB) ([]models.News, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var items []models.News
	result := db.Where("approved = ?", true).
		Order("publish_date DESC, id DESC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// Create creates a news item authored by the given user. New items start
// unapproved.
func Create(db *gorm.DB, userID uint64, title, body string, publishDate time.Time) (*models.News, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if title == "" {
		return nil, ErrTitleEmpty
	}

	item := &models.News{
		Title:       title,
		Body:        body,
		PublishDate: publishDate,
		Editorial: models.Editorial{
			CreatedUserID: userID,
		},
	}

	result := db.Create(item)
	if result.Error != nil {
		return nil, result.Error
	}

	return item, nil
}

// Update revises a news item. Approval is withdrawn and must be re-earned.
func Update(db *gorm.DB, userID, id uint64, title, body string, publishDate time.Time) (*models.News, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if title == "" {
		return nil, ErrTitleEmpty
	}

	var item models.News
	result := db.First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, result.Error
	}

	item.Title = title
	item.Body = body
	item.PublishDate = publishDate
	item.MarkRevised(userID, time.Now())

	if err := db.Select("*").Save(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// Approve marks a news item as approved by the given user.
func Approve(db *gorm.DB, userID, id uint64) (*models.News, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var item models.News
	result := db.First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, result.Error
	}

	item.MarkApproved(userID, time.Now())

	if err := db.Select("*").Save(&item).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// Delete deletes a news item by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.News{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNewsNotFound
	}

	return nil
}
