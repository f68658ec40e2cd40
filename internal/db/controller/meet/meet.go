// Package meet provides CRUD and approval operations for swim meets.
package meet

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

var (
	// ErrMeetNotFound is returned when a meet is not found.
	ErrMeetNotFound = errors.New("meet not found")
	// ErrTitleEmpty is returned when the title is empty.
	ErrTitleEmpty = errors.New("meet title cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Fields carries the editable attributes of a meet.
type Fields struct {
	Title         string
	Venue         string
	FromDate      time.Time
	ToDate        time.Time
	EntryDeadline *time.Time
	Body          string
}

// GetAll retrieves all meets, soonest first.
func GetAll(db *gorm.DB) ([]models.Meet, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var meets []models.Meet
	result := db.Order("from_date ASC, id ASC").Find(&meets)
	if result.Error != nil {
		return nil, result.Error
	}

	return meets, nil
}

// GetByID retrieves a meet by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Meet, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var m models.Meet
	result := db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMeetNotFound
		}
		return nil, result.Error
	}

	return &m, nil
}

// PublicList retrieves approved meets, soonest first.
func PublicList(db *gorm.DB) ([]models.Meet, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var meets []models.Meet
	result := db.Where("approved = ?", true).
		Order("from_date ASC, id ASC").
		Find(&meets)
	if result.Error != nil {
		return nil, result.Error
	}

	return meets, nil
}

// Create creates a meet authored by the given user. New meets start unapproved.
func Create(db *gorm.DB, userID uint64, f Fields) (*models.Meet, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if f.Title == "" {
		return nil, ErrTitleEmpty
	}

	m := &models.Meet{
		Title:         f.Title,
		Venue:         f.Venue,
		FromDate:      f.FromDate,
		ToDate:        f.ToDate,
		EntryDeadline: f.EntryDeadline,
		Body:          f.Body,
		Editorial: models.Editorial{
			CreatedUserID: userID,
		},
	}

	result := db.Create(m)
	if result.Error != nil {
		return nil, result.Error
	}

	return m, nil
}

// Update revises a meet. Approval is withdrawn and must be re-earned.
func Update(db *gorm.DB, userID, id uint64, f Fields) (*models.Meet, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if f.Title == "" {
		return nil, ErrTitleEmpty
	}

	var m models.Meet
	result := db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMeetNotFound
		}
		return nil, result.Error
	}

	m.Title = f.Title
	m.Venue = f.Venue
	m.FromDate = f.FromDate
	m.ToDate = f.ToDate
	m.EntryDeadline = f.EntryDeadline
	m.Body = f.Body
	m.MarkRevised(userID, time.Now())

	if err := db.Select("*").Save(&m).Error; err != nil {
		return nil, err
	}

	return &m, nil
}

// Approve marks a meet as approved by the given user.
func Approve(db *gorm.DB, userID, id uint64) (*models.Meet, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var m models.Meet
	result := db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMeetNotFound
		}
		return nil, result.Error
	}

	m.MarkApproved(userID, time.Now())

	if err := db.Select("*").Save(&m).Error; err != nil {
		return nil, err
	}

	return &m, nil
}

// Delete deletes a meet by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Meet{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMeetNotFound
	}

	return nil
}
