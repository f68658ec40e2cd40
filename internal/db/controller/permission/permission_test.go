package permission

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Group{}, &models.Category{}, &models.Permission{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedGroup(t *testing.T, db *gorm.DB, name string) *models.Group {
	t.Helper()

	group := &models.Group{Name: name}
	require.NoError(t, db.Create(group).Error)

	return group
}

func seedCategory(t *testing.T, db *gorm.DB, name, link string, order int) *models.Category {
	t.Helper()

	cat := &models.Category{Name: name, Link: link, Order: order, Role: models.RoleMember}
	require.NoError(t, db.Create(cat).Error)

	return cat
}

func TestGetByGroup(t *testing.T) {
	db := setupTestDB(t)

	editors := seedGroup(t, db, "editors")
	news := seedCategory(t, db, "News", "news", 1)

	require.NoError(t, ReplaceForGroup(db, editors.ID, []Grant{
		{CategoryID: news.ID, View: true, Submit: true},
	}))

	perms, err := GetByGroup(db, editors.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.True(t, perms[0].View)
	assert.True(t, perms[0].Submit)
	assert.False(t, perms[0].Approve)

	perms, err = GetByGroup(db, 999)
	require.NoError(t, err)
	assert.Empty(t, perms)

	_, err = GetByGroup(nil, editors.ID)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestGetByCategory(t *testing.T) {
	db := setupTestDB(t)

	editors := seedGroup(t, db, "editors")
	approvers := seedGroup(t, db, "approvers")
	news := seedCategory(t, db, "News", "news", 1)
	meets := seedCategory(t, db, "Meets", "meet", 2)

	require.NoError(t, ReplaceForGroup(db, editors.ID, []Grant{
		{CategoryID: news.ID, Submit: true},
		{CategoryID: meets.ID, Submit: true},
	}))
	require.NoError(t, ReplaceForGroup(db, approvers.ID, []Grant{
		{CategoryID: news.ID, Approve: true},
	}))

	perms, err := GetByCategory(db, news.ID)
	require.NoError(t, err)
	assert.Len(t, perms, 2)
}

func TestReplaceForGroup(t *testing.T) {
	db := setupTestDB(t)

	editors := seedGroup(t, db, "editors")
	news := seedCategory(t, db, "News", "news", 1)
	meets := seedCategory(t, db, "Meets", "meet", 2)

	require.NoError(t, ReplaceForGroup(db, editors.ID, []Grant{
		{CategoryID: news.ID, View: true, Submit: true},
		{CategoryID: meets.ID, View: true},
	}))

	// the new set fully replaces the old one
	require.NoError(t, ReplaceForGroup(db, editors.ID, []Grant{
		{CategoryID: news.ID, Approve: true},
	}))

	perms, err := GetByGroup(db, editors.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, news.ID, perms[0].CategoryID)
	assert.True(t, perms[0].Approve)
	assert.False(t, perms[0].View)
}

func TestReplaceForGroupDuplicateCategory(t *testing.T) {
	db := setupTestDB(t)

	editors := seedGroup(t, db, "editors")
	news := seedCategory(t, db, "News", "news", 1)

	// last grant for the same category wins
	require.NoError(t, ReplaceForGroup(db, editors.ID, []Grant{
		{CategoryID: news.ID, View: true},
		{CategoryID: news.ID, Approve: true},
	}))

	perms, err := GetByGroup(db, editors.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.True(t, perms[0].Approve)
	assert.False(t, perms[0].View)
}

func TestReplaceForGroupClear(t *testing.T) {
	db := setupTestDB(t)

	editors := seedGroup(t, db, "editors")
	news := seedCategory(t, db, "News", "news", 1)

	require.NoError(t, ReplaceForGroup(db, editors.ID, []Grant{
		{CategoryID: news.ID, View: true},
	}))
	require.NoError(t, ReplaceForGroup(db, editors.ID, nil))

	perms, err := GetByGroup(db, editors.ID)
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestReplaceForGroupNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := ReplaceForGroup(db, 999, []Grant{{CategoryID: 1, View: true}})
	require.ErrorIs(t, err, ErrGroupNotFound)
}
