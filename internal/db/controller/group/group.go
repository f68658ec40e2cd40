// Package group provides CRUD and membership operations for user groups.
package group

import (
	"errors"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

var (
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupNameEmpty is returned when attempting to create or rename a group with an empty name.
	ErrGroupNameEmpty = errors.New("group name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves all groups ordered by name.
func GetAll(db *gorm.DB) ([]models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var groups []models.Group
	result := db.Order("name ASC").Find(&groups)
	if result.Error != nil {
		return nil, result.Error
	}

	return groups, nil
}

// GetByID retrieves a group by its ID.
func GetByID(db *gorm.DB, id uint) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var group models.Group
	result := db.First(&group, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, result.Error
	}

	return &group, nil
}

// Create creates a new group.
func Create(db *gorm.DB, name, description string) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	group := &models.Group{
		Name:        name,
		Description: description,
	}

	result := db.Create(group)
	if result.Error != nil {
		return nil, result.Error
	}

	return group, nil
}

// Update renames a group and updates its description.
func Update(db *gorm.DB, id uint, name, description string) (*models.Group, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	var group models.Group
	result := db.First(&group, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, result.Error
	}

	group.Name = name
	group.Description = description

	result = db.Save(&group)
	if result.Error != nil {
		return nil, result.Error
	}

	return &group, nil
}

// Delete deletes a group by ID. Memberships and permission grants are
// removed by the cascade constraints.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Group{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// Members retrieves the users belonging to a group, ordered by name.
func Members(db *gorm.DB, groupID uint) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	result := db.Table("users").
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Order("users.name ASC").
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// ReplaceMembers replaces a group's membership list with the given user ids.
// Both the delete and the inserts run in one transaction.
func ReplaceMembers(db *gorm.DB, groupID uint, userIDs []uint64) error {
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

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).
			Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}

		for _, userID := range userIDs {
			member := models.GroupMember{
				UserID:  userID,
				GroupID: groupID,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
