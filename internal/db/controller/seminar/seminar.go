// Package seminar provides CRUD, approval and fiscal-year queries for
// training seminars.
package seminar

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

var (
	// ErrSeminarNotFound is returned when a seminar is not found.
	ErrSeminarNotFound = errors.New("seminar not found")
	// ErrTitleEmpty is returned when the title is empty.
	ErrTitleEmpty = errors.New("seminar title cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Fields carries the editable attributes of a seminar.
type Fields struct {
	Title    string
	Venue    string
	FromDate time.Time
	ToDate   time.Time
	Capacity int
	Body     string
}

// FiscalYearOf returns the fiscal year a date falls in. The fiscal year N
// spans April 1 of year N through March 31 of year N+1, so a date in
// January-March belongs to the previous calendar year's fiscal year.
func FiscalYearOf(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

// FiscalYearWindow returns the half-open time window [start, end) covering
// the given fiscal year.
func FiscalYearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.April, 1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// GetAll retrieves all seminars, soonest first.
func GetAll(db *gorm.DB) ([]models.Seminar, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var seminars []models.Seminar
	result := db.Order("from_date ASC, id ASC").Find(&seminars)
	if result.Error != nil {
		return nil, result.Error
	}

	return seminars, nil
}

// GetByID retrieves a seminar by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Seminar, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Seminar
	result := db.First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSeminarNotFound
		}
		return nil, result.Error
	}

	return &s, nil
}

// PublicList retrieves approved seminars whose start date falls inside the
// given fiscal year, soonest first.
func PublicList(db *gorm.DB, fiscalYear int) ([]models.Seminar, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	start, end := FiscalYearWindow(fiscalYear)

	var seminars []models.Seminar
	result := db.Where("approved = ?", true).
		Where("from_date >= ? AND from_date < ?", start, end).
		Order("from_date ASC, id ASC").
		Find(&seminars)
	if result.Error != nil {
		return nil, result.Error
	}

	return seminars, nil
}

// Create creates a seminar authored by the given user. New seminars start
// unapproved.
func Create(db *gorm.DB, userID uint64, f Fields) (*models.Seminar, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if f.Title == "" {
		return nil, ErrTitleEmpty
	}

	s := &models.Seminar{
		Title:    f.Title,
		Venue:    f.Venue,
		FromDate: f.FromDate,
		ToDate:   f.ToDate,
		Capacity: f.Capacity,
		Body:     f.Body,
		Editorial: models.Editorial{
			CreatedUserID: userID,
		},
	}

	result := db.Create(s)
	if result.Error != nil {
		return nil, result.Error
	}

	return s, nil
}

// Update revises a seminar and returns both the fiscal year it occupied
// before the edit and the updated row, so callers can republish every year
// window the seminar may have moved out of or into. Approval is withdrawn.
func Update(db *gorm.DB, userID, id uint64, f Fields) (*models.Seminar, int, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}
	if f.Title == "" {
		return nil, 0, ErrTitleEmpty
	}

	var s models.Seminar
	result := db.First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, 0, ErrSeminarNotFound
		}
		return nil, 0, result.Error
	}

	beforeYear := FiscalYearOf(s.FromDate)

	s.Title = f.Title
	s.Venue = f.Venue
	s.FromDate = f.FromDate
	s.ToDate = f.ToDate
	s.Capacity = f.Capacity
	s.Body = f.Body
	s.MarkRevised(userID, time.Now())

	if err := db.Select("*").Save(&s).Error; err != nil {
		return nil, 0, err
	}

	return &s, beforeYear, nil
}

// Approve marks a seminar as approved by the given user.
func Approve(db *gorm.DB, userID, id uint64) (*models.Seminar, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Seminar
	result := db.First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSeminarNotFound
		}
		return nil, result.Error
	}

	s.MarkApproved(userID, time.Now())

	if err := db.Select("*").Save(&s).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

// Delete deletes a seminar by ID and returns the fiscal year it occupied so
// the caller can republish it.
func Delete(db *gorm.DB, id uint64) (int, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var s models.Seminar
	result := db.First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, ErrSeminarNotFound
		}
		return 0, result.Error
	}

	year := FiscalYearOf(s.FromDate)

	if err := db.Delete(&models.Seminar{}, id).Error; err != nil {
		return 0, err
	}

	return year, nil
}
