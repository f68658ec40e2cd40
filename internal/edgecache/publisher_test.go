package edgecache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryDirectory implements Directory on a plain map for tests.
type memoryDirectory struct {
	pointers map[string]string
	getErr   error
	setErr   error
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{pointers: make(map[string]string)}
}

func (d *memoryDirectory) Get(_ context.Context, key string) (string, error) {
	if d.getErr != nil {
		return "", d.getErr
	}
	return d.pointers[key], nil
}

func (d *memoryDirectory) Set(_ context.Context, key, value string) error {
	if d.setErr != nil {
		return d.setErr
	}
	d.pointers[key] = value
	return nil
}

func setupPublisher(t *testing.T) (*Service, *memoryDirectory, *memory.Storage) {
	t.Helper()

	blobs := memory.New()
	t.Cleanup(func() { _ = blobs.Close() })

	directory := newMemoryDirectory()

	return NewService(blobs, directory, "https://cdn.example.com/"), directory, blobs
}

func objectKey(t *testing.T, url string) string {
	t.Helper()

	require.True(t, strings.HasPrefix(url, "https://cdn.example.com/"))
	return strings.TrimPrefix(url, "https://cdn.example.com/")
}

func TestPublishWritesSnapshot(t *testing.T) {
	svc, _, blobs := setupPublisher(t)
	ctx := context.Background()

	key := RecordKey(1, 2, 1)
	require.NoError(t, svc.Publish(ctx, key, []string{"a", "b"}))

	url, err := svc.CurrentPointer(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, url, "data/record_1_2_1_")
	assert.True(t, strings.HasSuffix(url, ".json"))

	data, err := blobs.Get(objectKey(t, url))
	require.NoError(t, err)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Equal(t, "data/record_1_2_1", snapshot.Partition)
	assert.False(t, snapshot.GeneratedAt.IsZero())
	assert.Equal(t, []any{"a", "b"}, snapshot.Items)
}

func TestPublishSwapsPointerAndDeletesOldBlob(t *testing.T) {
	svc, _, blobs := setupPublisher(t)
	ctx := context.Background()

	key := LiveKey()
	require.NoError(t, svc.Publish(ctx, key, []string{"first"}))

	firstURL, err := svc.CurrentPointer(ctx, key)
	require.NoError(t, err)

	require.NoError(t, svc.Publish(ctx, key, []string{"second"}))

	secondURL, err := svc.CurrentPointer(ctx, key)
	require.NoError(t, err)
	assert.NotEqual(t, firstURL, secondURL)

	// the superseded object is gone, the current one readable
	data, err := blobs.Get(objectKey(t, firstURL))
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = blobs.Get(objectKey(t, secondURL))
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestPublishSurvivesPointerReadFailure(t *testing.T) {
	svc, directory, _ := setupPublisher(t)
	ctx := context.Background()

	directory.getErr = errors.New("directory down")

	// publish still succeeds, it just cannot clean up the old blob
	require.NoError(t, svc.Publish(ctx, LiveKey(), []string{"x"}))

	directory.getErr = nil
	url, err := svc.CurrentPointer(ctx, LiveKey())
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestPublishPointerSwapFailure(t *testing.T) {
	svc, directory, _ := setupPublisher(t)
	ctx := context.Background()

	directory.setErr = errors.New("directory down")

	err := svc.Publish(ctx, LiveKey(), []string{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swap pointer")
}

func TestPublishLeavesForeignPointerAlone(t *testing.T) {
	svc, directory, blobs := setupPublisher(t)
	ctx := context.Background()

	key := SeminarKey(2026)
	directory.pointers[string(key)] = "https://other.example.com/data/seminar_2026_old.json"

	require.NoError(t, svc.Publish(ctx, key, []string{"x"}))

	// a pointer from another base URL is not treated as one of our objects
	data, err := blobs.Get("data/seminar_2026_old.json")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCurrentPointerUnpublished(t *testing.T) {
	svc, _, _ := setupPublisher(t)

	url, err := svc.CurrentPointer(context.Background(), RecordKey(9, 9, 9))
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestPartitionKeys(t *testing.T) {
	assert.Equal(t, Key("data/live"), LiveKey())
	assert.Equal(t, Key("data/record_1_2_1"), RecordKey(1, 2, 1))
	assert.Equal(t, Key("data/seminar_2025"), SeminarKey(2025))
}
