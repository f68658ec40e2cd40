package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

func TestBuild(t *testing.T) {
	categories := []models.Category{
		{Name: "Records", Link: "record", Order: 3, Role: models.RoleMember},
		{Name: "News", Link: "news", Order: 1, Role: models.RoleMember},
		{Name: "Settings", Link: "settings", Order: 2, Role: models.RoleAdministrator},
		{Name: "Meets", Link: "meet", Order: 2, Role: models.RoleMember},
		{Name: "Drafts", Link: "drafts", Order: 0, Role: models.RoleMember},
	}

	menu := Build(categories)

	// admin-only and zero-order sections stay hidden
	assert.Len(t, menu.Items, 3)
	assert.False(t, menu.Contains("settings"))
	assert.False(t, menu.Contains("drafts"))

	// display sequence
	assert.Equal(t, "news", menu.Items[0].Link)
	assert.Equal(t, "meet", menu.Items[1].Link)
	assert.Equal(t, "record", menu.Items[2].Link)
}

func TestBuildEmpty(t *testing.T) {
	menu := Build(nil)

	assert.NotNil(t, menu)
	assert.Empty(t, menu.Items)
	assert.False(t, menu.Contains("news"))
}

func TestContains(t *testing.T) {
	menu := Build([]models.Category{
		{Name: "News", Link: "news", Order: 1, Role: models.RoleMember},
	})

	assert.True(t, menu.Contains("news"))
	assert.False(t, menu.Contains("meet"))
}
