package record

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

	err = db.AutoMigrate(&models.Record{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedRecord(t *testing.T, db *gorm.DB, f Fields) *models.Record {
	t.Helper()

	r, err := Create(db, 1, f)
	require.NoError(t, err)

	return r
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	r, err := Create(db, 4, Fields{
		Category:   1,
		Poolsize:   2,
		Sex:        1,
		Event:      "100m Freestyle",
		HolderName: "A. Swimmer",
		Time:       "0:52.31",
		RecordDate: time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
		Valid:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), r.CreatedUserID)
	assert.False(t, r.Approved)
	assert.Equal(t, Partition{Category: 1, Poolsize: 2, Sex: 1}, PartitionOf(r))

	_, err = Create(db, 4, Fields{})
	require.ErrorIs(t, err, ErrEventEmpty)
}

func TestUpdateReturnsBeforePartition(t *testing.T) {
	db := setupTestDB(t)

	r := seedRecord(t, db, Fields{Category: 1, Poolsize: 2, Sex: 1, Event: "100m Freestyle", Valid: true})

	// moving the record across partitions reports where it used to live
	updated, before, err := Update(db, 2, r.ID, Fields{
		Category: 3, Poolsize: 2, Sex: 1, Event: "100m Freestyle", Valid: true,
	})
	require.NoError(t, err)
	assert.Equal(t, Partition{Category: 1, Poolsize: 2, Sex: 1}, before)
	assert.Equal(t, Partition{Category: 3, Poolsize: 2, Sex: 1}, PartitionOf(updated))
	assert.False(t, updated.Approved)

	// an in-place edit reports the same partition on both sides
	updated, before, err = Update(db, 2, r.ID, Fields{
		Category: 3, Poolsize: 2, Sex: 1, Event: "100m Butterfly", Valid: true,
	})
	require.NoError(t, err)
	assert.Equal(t, before, PartitionOf(updated))

	_, _, err = Update(db, 2, 999, Fields{Event: "100m Freestyle"})
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestApprove(t *testing.T) {
	db := setupTestDB(t)

	r := seedRecord(t, db, Fields{Category: 1, Event: "100m Freestyle", Valid: true})

	approved, err := Approve(db, 9, r.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedUserID)
	assert.Equal(t, uint64(9), *approved.ApprovedUserID)

	_, err = Approve(db, 9, 999)
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteReturnsVacatedPartition(t *testing.T) {
	db := setupTestDB(t)

	r := seedRecord(t, db, Fields{Category: 2, Poolsize: 1, Sex: 2, Event: "200m Backstroke"})

	p, err := Delete(db, r.ID)
	require.NoError(t, err)
	assert.Equal(t, Partition{Category: 2, Poolsize: 1, Sex: 2}, p)

	_, err = Delete(db, r.ID)
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestPublicList(t *testing.T) {
	db := setupTestDB(t)

	target := Partition{Category: 1, Poolsize: 2, Sex: 1}

	visible := seedRecord(t, db, Fields{Category: 1, Poolsize: 2, Sex: 1, Event: "50m Freestyle", Valid: true})
	invalid := seedRecord(t, db, Fields{Category: 1, Poolsize: 2, Sex: 1, Event: "100m Freestyle", Valid: false})
	pending := seedRecord(t, db, Fields{Category: 1, Poolsize: 2, Sex: 1, Event: "200m Freestyle", Valid: true})
	elsewhere := seedRecord(t, db, Fields{Category: 2, Poolsize: 2, Sex: 1, Event: "50m Freestyle", Valid: true})

	for _, id := range []uint64{visible.ID, invalid.ID, elsewhere.ID} {
		_, err := Approve(db, 1, id)
		require.NoError(t, err)
	}
	_ = pending

	records, err := PublicList(db, target)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, visible.ID, records[0].ID)
}

func TestPublicListOrdering(t *testing.T) {
	db := setupTestDB(t)

	p := Partition{Category: 1, Poolsize: 1, Sex: 1}

	second := seedRecord(t, db, Fields{Category: 1, Poolsize: 1, Sex: 1, Event: "200m Medley", Valid: true})
	first := seedRecord(t, db, Fields{Category: 1, Poolsize: 1, Sex: 1, Event: "100m Medley", Valid: true})

	for _, id := range []uint64{first.ID, second.ID} {
		_, err := Approve(db, 1, id)
		require.NoError(t, err)
	}

	records, err := PublicList(db, p)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "100m Medley", records[0].Event)
	assert.Equal(t, "200m Medley", records[1].Event)
}
