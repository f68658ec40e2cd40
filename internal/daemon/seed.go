package daemon

import (
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/config"
	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// defaultCategories are the site sections created on first start, in
// display sequence.
var defaultCategories = []models.Category{
	{Name: "News", Link: "news", Order: 1, Role: models.RoleMember},
	{Name: "Meets", Link: "meet", Order: 2, Role: models.RoleMember},
	{Name: "Records", Link: "record", Order: 3, Role: models.RoleMember},
	{Name: "Seminars", Link: "seminar", Order: 4, Role: models.RoleMember},
	{Name: "Live", Link: "live", Order: 5, Role: models.RoleMember},
}

func seed(_ *config.Config, db *gorm.DB) {
	// Seed the bootstrap administrator if the user table is empty.
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		db.Create(
			&models.User{
				Name:       "Administrator",
				Email:      "admin@localhost",
				Password:   models.HashPassword("changeme"),
				Active:     true,
				Role:       models.RoleAdministrator,
				AuthSource: models.AuthSourceLocal,
			},
		)
	}

	// Seed the default site sections if the category table is empty.
	db.Model(&models.Category{}).Count(&count)
	if count == 0 {
		for i := range defaultCategories {
			db.Create(&defaultCategories[i])
		}
	}
}
