package category

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

	err = db.AutoMigrate(&models.Category{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, link string, order int) *models.Category {
	t.Helper()

	cat := &models.Category{Name: name, Link: link, Order: order, Role: models.RoleMember}
	require.NoError(t, db.Create(cat).Error)

	return cat
}

func orders(t *testing.T, db *gorm.DB) []int {
	t.Helper()

	cats, err := GetAll(db)
	require.NoError(t, err)

	out := make([]int, 0, len(cats))
	for _, c := range cats {
		if c.Order > 0 {
			out = append(out, c.Order)
		}
	}

	return out
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetAll(nil)
	require.ErrorIs(t, err, ErrDBNil)

	seedCategory(t, db, "Records", "record", 3)
	seedCategory(t, db, "News", "news", 1)
	seedCategory(t, db, "Meets", "meet", 2)

	cats, err := GetAll(db)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "news", cats[0].Link)
	assert.Equal(t, "meet", cats[1].Link)
	assert.Equal(t, "record", cats[2].Link)
}

func TestGetByLink(t *testing.T) {
	db := setupTestDB(t)

	seedCategory(t, db, "News", "news", 1)
	seedCategory(t, db, "Old News", "news", 2)

	// duplicate links are data, not an error
	cats, err := GetByLink(db, "news")
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	cats, err = GetByLink(db, "missing")
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestCreateAppendsAtEnd(t *testing.T) {
	db := setupTestDB(t)

	first, err := Create(db, "News", "news", models.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Order)

	second, err := Create(db, "Meets", "meet", models.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Order)

	_, err = Create(db, "", "", models.RoleMember)
	require.ErrorIs(t, err, ErrCategoryNameEmpty)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "News", "news", 1)

	updated, err := Update(db, cat.ID, "Latest News", "news", models.RoleMember, 5)
	require.NoError(t, err)
	assert.Equal(t, "Latest News", updated.Name)
	assert.Equal(t, 5, updated.Order)

	_, err = Update(db, 999, "x", "x", models.RoleMember, 1)
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "News", "news", 1)

	require.NoError(t, Delete(db, cat.ID))
	require.ErrorIs(t, Delete(db, cat.ID), ErrCategoryNotFound)
}

func TestReorder(t *testing.T) {
	db := setupTestDB(t)

	// gaps and duplicates from manual edits
	seedCategory(t, db, "News", "news", 4)
	seedCategory(t, db, "Meets", "meet", 4)
	seedCategory(t, db, "Records", "record", 9)
	seedCategory(t, db, "Hidden", "hidden", 0)

	require.NoError(t, Reorder(db))
	assert.Equal(t, []int{1, 2, 3}, orders(t, db))

	// zero stays hidden
	hidden, err := GetByLink(db, "hidden")
	require.NoError(t, err)
	require.Len(t, hidden, 1)
	assert.Zero(t, hidden[0].Order)

	// relative order survives, ties broken by creation time
	cats, err := GetAll(db)
	require.NoError(t, err)
	assert.Equal(t, "hidden", cats[0].Link)
	assert.Equal(t, "news", cats[1].Link)
	assert.Equal(t, "meet", cats[2].Link)
	assert.Equal(t, "record", cats[3].Link)
}

func TestReorderIdempotent(t *testing.T) {
	db := setupTestDB(t)

	seedCategory(t, db, "News", "news", 7)
	seedCategory(t, db, "Meets", "meet", 2)

	require.NoError(t, Reorder(db))
	first := orders(t, db)

	require.NoError(t, Reorder(db))
	assert.Equal(t, first, orders(t, db))
	assert.Equal(t, []int{1, 2}, first)
}
