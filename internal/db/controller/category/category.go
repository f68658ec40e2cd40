// Package category provides CRUD and reorder operations for content categories.
package category

import (
	"errors"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryNameEmpty is returned when the name or link is empty.
	ErrCategoryNameEmpty = errors.New("category name and link cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves every category in display sequence: ascending manual
// order with creation time breaking ties.
func GetAll(db *gorm.DB) ([]models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var categories []models.Category
	result := db.Order("display_order ASC, created_at ASC").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// GetByID retrieves a category by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var category models.Category
	result := db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	return &category, nil
}

// GetByLink retrieves every category row matching the given link slug.
// Normally a link resolves to exactly one row, but duplicates are tolerated
// and returned in display sequence.
func GetByLink(db *gorm.DB, link string) ([]models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var categories []models.Category
	result := db.Where("link = ?", link).
		Order("display_order ASC, created_at ASC").
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// Create creates a new category. The new category is appended to the end of
// the display sequence.
func Create(db *gorm.DB, name, link, role string) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" || link == "" {
		return nil, ErrCategoryNameEmpty
	}

	var maxOrder int
	if err := db.Model(&models.Category{}).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:  name,
		Link:  link,
		Role:  role,
		Order: maxOrder + 1,
	}

	result := db.Create(category)
	if result.Error != nil {
		return nil, result.Error
	}

	return category, nil
}

// Update updates the name, link, role and manual order of a category.
func Update(db *gorm.DB, id uint, name, link, role string, order int) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" || link == "" {
		return nil, ErrCategoryNameEmpty
	}

	var category models.Category
	result := db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	category.Name = name
	category.Link = link
	category.Role = role
	category.Order = order

	result = db.Save(&category)
	if result.Error != nil {
		return nil, result.Error
	}

	return &category, nil
}

// Delete deletes a category by ID. The remaining order values are left with
// a gap; callers run Reorder afterwards to restore the dense sequence.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
