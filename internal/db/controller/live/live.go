// Package live provides CRUD, on-air state and reorder operations for
// live-stream entries.
package live

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

var (
	// ErrLiveNotFound is returned when a live entry is not found.
	ErrLiveNotFound = errors.New("live entry not found")
	// ErrTitleEmpty is returned when the title or URL is empty.
	ErrTitleEmpty = errors.New("live title and url cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Fields carries the editable attributes of a live entry.
type Fields struct {
	Title    string
	URL      string
	FromDate time.Time
	OnAir    bool
	Finished bool
	Order    int
}

// GetAll retrieves all live entries in display sequence.
func GetAll(db *gorm.DB) ([]models.Live, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entries []models.Live
	result := db.Order("display_order ASC, from_date ASC").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// GetByID retrieves a live entry by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Live, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entry models.Live
	result := db.First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLiveNotFound
		}
		return nil, result.Error
	}

	return &entry, nil
}

// PublicList retrieves the public view: approved entries that are on air or
// already finished, in display sequence.
func PublicList(db *gorm.DB) ([]models.Live, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entries []models.Live
	result := db.Where("approved = ?", true).
		Where("on_air = ? OR finished = ?", true, true).
		Order("display_order ASC, from_date ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Create creates a live entry authored by the given user.
func Create(db *gorm.DB, userID uint64, f Fields) (*models.Live, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if f.Title == "" || f.URL == "" {
		return nil, ErrTitleEmpty
	}

	entry := &models.Live{
		Title:    f.Title,
		URL:      f.URL,
		FromDate: f.FromDate,
		OnAir:    f.OnAir,
		Finished: f.Finished,
		Order:    f.Order,
		Editorial: models.Editorial{
			CreatedUserID: userID,
		},
	}

	result := db.Create(entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return entry, nil
}

// Update revises a live entry. Approval is withdrawn and must be re-earned.
func Update(db *gorm.DB, userID, id uint64, f Fields) (*models.Live, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if f.Title == "" || f.URL == "" {
		return nil, ErrTitleEmpty
	}

	var entry models.Live
	result := db.First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLiveNotFound
		}
		return nil, result.Error
	}

	entry.Title = f.Title
	entry.URL = f.URL
	entry.FromDate = f.FromDate
	entry.OnAir = f.OnAir
	entry.Finished = f.Finished
	entry.Order = f.Order
	entry.MarkRevised(userID, time.Now())

	if err := db.Select("*").Save(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// SetOnAir toggles the on-air flag without counting as a content revision,
// so flipping a stream live does not withdraw its approval.
func SetOnAir(db *gorm.DB, id uint64, onAir bool) (*models.Live, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entry models.Live
	result := db.First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLiveNotFound
		}
		return nil, result.Error
	}

	entry.OnAir = onAir
	if !onAir {
		entry.Finished = true
	}

	if err := db.Select("*").Save(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// Approve marks a live entry as approved by the given user.
func Approve(db *gorm.DB, userID, id uint64) (*models.Live, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var entry models.Live
	result := db.First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLiveNotFound
		}
		return nil, result.Error
	}

	entry.MarkApproved(userID, time.Now())

	if err := db.Select("*").Save(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// Delete deletes a live entry by ID. Callers run Reorder afterwards to
// restore the dense display sequence.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Live{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLiveNotFound
	}

	return nil
}
