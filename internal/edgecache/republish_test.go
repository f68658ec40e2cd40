package edgecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/controller/live"
	"github.com/swimfed-admin/swimfed-admin/internal/db/controller/record"
	"github.com/swimfed-admin/swimfed-admin/internal/db/controller/seminar"
	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// recordingPublisher captures published partitions for assertions.
type recordingPublisher struct {
	published []Key
	failWith  error
}

func (p *recordingPublisher) Publish(_ context.Context, partition Key, _ any) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.published = append(p.published, partition)
	return nil
}

func (p *recordingPublisher) CurrentPointer(context.Context, Key) (string, error) {
	return "", nil
}

func setupRepublishDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Live{}, &models.Record{}, &models.Seminar{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestRepublishLive(t *testing.T) {
	db := setupRepublishDB(t)
	pub := &recordingPublisher{}

	entry, err := live.Create(db, 1, live.Fields{Title: "Finals", URL: "https://stream.example.com/finals"})
	require.NoError(t, err)
	_, err = live.Approve(db, 2, entry.ID)
	require.NoError(t, err)
	_, err = live.SetOnAir(db, entry.ID, true)
	require.NoError(t, err)

	RepublishLive(context.Background(), db, pub)

	require.Len(t, pub.published, 1)
	assert.Equal(t, LiveKey(), pub.published[0])
}

func TestRepublishRecord(t *testing.T) {
	db := setupRepublishDB(t)
	pub := &recordingPublisher{}

	_, err := record.Create(db, 1, record.Fields{
		Category: 2, Poolsize: 1, Sex: 1, Event: "100m Freestyle", Valid: true,
	})
	require.NoError(t, err)

	RepublishRecord(context.Background(), db, pub, record.Partition{Category: 2, Poolsize: 1, Sex: 1})

	require.Len(t, pub.published, 1)
	assert.Equal(t, RecordKey(2, 1, 1), pub.published[0])
}

func TestRepublishSeminar(t *testing.T) {
	db := setupRepublishDB(t)
	pub := &recordingPublisher{}

	_, err := seminar.Create(db, 1, seminar.Fields{
		Title:    "Clinic",
		FromDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	RepublishSeminar(context.Background(), db, pub, 2026)

	require.Len(t, pub.published, 1)
	assert.Equal(t, SeminarKey(2026), pub.published[0])
}

func TestRepublishSwallowsErrors(t *testing.T) {
	db := setupRepublishDB(t)
	pub := &recordingPublisher{failWith: errors.New("blob store down")}

	// a broken publisher never propagates into the calling mutation
	RepublishLive(context.Background(), db, pub)
	RepublishRecord(context.Background(), db, pub, record.Partition{})
	RepublishSeminar(context.Background(), db, pub, 2026)

	assert.Empty(t, pub.published)
}
