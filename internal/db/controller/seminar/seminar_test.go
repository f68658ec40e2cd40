package seminar

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

	err = db.AutoMigrate(&models.Seminar{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedSeminar(t *testing.T, db *gorm.DB, title string, from time.Time) *models.Seminar {
	t.Helper()

	s, err := Create(db, 1, Fields{Title: title, FromDate: from, ToDate: from})
	require.NoError(t, err)

	return s
}

func TestFiscalYearOf(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"mid year", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"january belongs to previous year", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 2025},
		{"march 31 belongs to previous year", time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC), 2025},
		{"april 1 starts the new year", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"december", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FiscalYearOf(tt.date))
		})
	}
}

func TestFiscalYearWindow(t *testing.T) {
	start, end := FiscalYearWindow(2026)

	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC), end)

	// the window is half open: its end belongs to the next year
	assert.Equal(t, 2027, FiscalYearOf(end))
	assert.Equal(t, 2026, FiscalYearOf(end.Add(-time.Second)))
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	s, err := Create(db, 6, Fields{Title: "Coaching Clinic", Venue: "City Pool", Capacity: 30})
	require.NoError(t, err)
	assert.Equal(t, uint64(6), s.CreatedUserID)
	assert.False(t, s.Approved)

	_, err = Create(db, 6, Fields{})
	require.ErrorIs(t, err, ErrTitleEmpty)
}

func TestUpdateReturnsBeforeYear(t *testing.T) {
	db := setupTestDB(t)

	s := seedSeminar(t, db, "Clinic", time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))

	// moving the start date into the previous fiscal year reports where it was
	updated, beforeYear, err := Update(db, 2, s.ID, Fields{
		Title:    "Clinic",
		FromDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 2026, beforeYear)
	assert.Equal(t, 2025, FiscalYearOf(updated.FromDate))
	assert.False(t, updated.Approved)

	_, _, err = Update(db, 2, 999, Fields{Title: "x"})
	require.ErrorIs(t, err, ErrSeminarNotFound)
}

func TestApprove(t *testing.T) {
	db := setupTestDB(t)

	s := seedSeminar(t, db, "Clinic", time.Now())

	approved, err := Approve(db, 8, s.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedUserID)
	assert.Equal(t, uint64(8), *approved.ApprovedUserID)
}

func TestDeleteReturnsYear(t *testing.T) {
	db := setupTestDB(t)

	s := seedSeminar(t, db, "Clinic", time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC))

	year, err := Delete(db, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)

	_, err = Delete(db, s.ID)
	require.ErrorIs(t, err, ErrSeminarNotFound)
}

func TestPublicList(t *testing.T) {
	db := setupTestDB(t)

	inYear := seedSeminar(t, db, "Summer Clinic", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	edge := seedSeminar(t, db, "Spring Clinic", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	lastYear := seedSeminar(t, db, "Winter Clinic", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	pending := seedSeminar(t, db, "Unreviewed Clinic", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	for _, id := range []uint64{inYear.ID, edge.ID, lastYear.ID} {
		_, err := Approve(db, 1, id)
		require.NoError(t, err)
	}
	_ = pending

	seminars, err := PublicList(db, 2026)
	require.NoError(t, err)
	require.Len(t, seminars, 2)
	assert.Equal(t, "Spring Clinic", seminars[0].Title)
	assert.Equal(t, "Summer Clinic", seminars[1].Title)

	seminars, err = PublicList(db, 2025)
	require.NoError(t, err)
	require.Len(t, seminars, 1)
	assert.Equal(t, "Winter Clinic", seminars[0].Title)
}
