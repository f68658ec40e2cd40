package news

import (
	"testing"
	"time"

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

	err = db.AutoMigrate(&models.News{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	item, err := Create(db, 3, "Season Opens", "<p>body</p>", time.Now())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), item.CreatedUserID)
	assert.False(t, item.Approved)

	_, err = Create(db, 3, "", "body", time.Now())
	require.ErrorIs(t, err, ErrTitleEmpty)

	_, err = Create(nil, 3, "x", "y", time.Now())
	require.ErrorIs(t, err, ErrDBNil)
}

func TestUpdateWithdrawsApproval(t *testing.T) {
	db := setupTestDB(t)

	item, err := Create(db, 3, "Season Opens", "body", time.Now())
	require.NoError(t, err)

	_, err = Approve(db, 4, item.ID)
	require.NoError(t, err)

	updated, err := Update(db, 5, item.ID, "Season Opens (corrected)", "body", item.PublishDate)
	require.NoError(t, err)
	assert.False(t, updated.Approved)
	assert.Nil(t, updated.ApprovedUserID)
	assert.Nil(t, updated.ApprovedAt)
	require.NotNil(t, updated.RevisedUserID)
	assert.Equal(t, uint64(5), *updated.RevisedUserID)

	_, err = Update(db, 5, 999, "x", "y", time.Now())
	require.ErrorIs(t, err, ErrNewsNotFound)
}

func TestApprove(t *testing.T) {
	db := setupTestDB(t)

	item, err := Create(db, 3, "Season Opens", "body", time.Now())
	require.NoError(t, err)

	approved, err := Approve(db, 4, item.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedUserID)
	assert.Equal(t, uint64(4), *approved.ApprovedUserID)
	assert.NotNil(t, approved.ApprovedAt)

	_, err = Approve(db, 4, 999)
	require.ErrorIs(t, err, ErrNewsNotFound)
}

func TestPublicList(t *testing.T) {
	db := setupTestDB(t)

	older, err := Create(db, 1, "Older", "body", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	newer, err := Create(db, 1, "Newer", "body", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = Create(db, 1, "Draft", "body", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	for _, id := range []uint64{older.ID, newer.ID} {
		_, err := Approve(db, 2, id)
		require.NoError(t, err)
	}

	items, err := PublicList(db)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Newer", items[0].Title)
	assert.Equal(t, "Older", items[1].Title)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	item, err := Create(db, 1, "Season Opens", "body", time.Now())
	require.NoError(t, err)

	require.NoError(t, Delete(db, item.ID))
	require.ErrorIs(t, Delete(db, item.ID), ErrNewsNotFound)
}
