package category

import (
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// Reorder renumbers categories with a positive manual order to the dense
// sequence 1..N, preserving relative order. Ties in the manual order are
// broken by creation time. The whole renumbering runs in one transaction so
// a concurrent reader never observes a partially renumbered sequence.
// Applying Reorder twice yields the same sequence as applying it once.
func Reorder(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var categories []models.Category
		if err := tx.Where("display_order > 0").
			Order("display_order ASC, created_at ASC").
			Find(&categories).Error; err != nil {
			return err
		}

		for i := range categories {
			want := i + 1
			if categories[i].Order == want {
				continue
			}

			if err := tx.Model(&models.Category{}).
				Where("id = ?", categories[i].ID).
				Update("display_order", want).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
