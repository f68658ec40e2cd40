// Package permission manages capability grants tying groups to content categories.
package permission

import (
	"errors"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrGroupNotFound is returned when the referenced group does not exist.
	ErrGroupNotFound = errors.New("group not found")
)

// Grant is one capability set to store for a category when replacing a
// group's permission set.
type Grant struct {
	CategoryID uint
	View       bool
	Submit     bool
	Revise     bool
	Exclude    bool
	Approve    bool
}

// GetByGroup retrieves all permission rows held by a group.
func GetByGroup(db *gorm.DB, groupID uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission
	result := db.Where("group_id = ?", groupID).Find(&permissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}

// GetByCategory retrieves all permission rows granted on a category.
func GetByCategory(db *gorm.DB, categoryID uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission
	result := db.Where("category_id = ?", categoryID).Find(&permissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}

// ReplaceForGroup replaces a group's entire permission set with the given
// grants. The replacement is delete-all-then-recreate, but both steps run in
// one transaction so a failure never leaves the group's permissions empty.
// At most one row per (group, category) pair survives; a later grant for the
// same category overwrites an earlier one in the input.
func ReplaceForGroup(db *gorm.DB, groupID uint, grants []Grant) error {
	if db == nil {
		return ErrDBNil
	}

	var group models.Group
	if err := db.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	// collapse duplicate category ids, last grant wins
	byCategory := make(map[uint]Grant, len(grants))
	order := make([]uint, 0, len(grants))
	for _, g := range grants {
		if _, seen := byCategory[g.CategoryID]; !seen {
			order = append(order, g.CategoryID)
		}
		byCategory[g.CategoryID] = g
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).
			Delete(&models.Permission{}).Error; err != nil {
			return err
		}

		for _, categoryID := range order {
			g := byCategory[categoryID]
			row := models.Permission{
				GroupID:    groupID,
				CategoryID: g.CategoryID,
				View:       g.View,
				Submit:     g.Submit,
				Revise:     g.Revise,
				Exclude:    g.Exclude,
				Approve:    g.Approve,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
