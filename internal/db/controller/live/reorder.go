package live

import (
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// Reorder renumbers live entries with a positive manual order to the dense
// sequence 1..N, preserving relative order. Ties in the manual order are
// broken by the stream start date. The whole renumbering runs in one
// transaction so a concurrent reader never observes a partially renumbered
// sequence. Applying Reorder twice yields the same sequence as applying it
// once.
func Reorder(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var entries []models.Live
		if err := tx.Where("display_order > 0").
			Order("display_order ASC, from_date ASC").
			Find(&entries).Error; err != nil {
			return err
		}

		for i := range entries {
			want := i + 1
			if entries[i].Order == want {
				continue
			}

			if err := tx.Model(&models.Live{}).
				Where("id = ?", entries[i].ID).
				Update("display_order", want).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
