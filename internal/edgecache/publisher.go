package edgecache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Publisher republishes the public view of a partition so edge reads can be
// served from blob storage instead of the primary database. The snapshot is
// an intentionally stale read-optimization copy, never a second source of
// truth.
type Publisher interface {
	// Publish serializes payload, stores it as a new immutable blob, swaps
	// the directory pointer to it and best-effort deletes the previous blob.
	Publish(ctx context.Context, partition Key, payload any) error
	// CurrentPointer returns the URL currently published for the partition,
	// or an empty string when it has never been published.
	CurrentPointer(ctx context.Context, partition Key) (string, error)
}

// Snapshot is the envelope written to blob storage for every partition.
type Snapshot struct {
	Partition   string    `json:"partition"`
	GeneratedAt time.Time `json:"generatedAt"`
	Items       any       `json:"items"`
}

// Service implements Publisher on a blob store and a pointer directory.
type Service struct {
	blobs     fiber.Storage
	directory Directory
	baseURL   string
}

// NewService creates a Publisher. baseURL is the public prefix under which
// blob object keys are reachable (e.g. the bucket's website endpoint).
func NewService(blobs fiber.Storage, directory Directory, baseURL string) *Service {
	return &Service{
		blobs:     blobs,
		directory: directory,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Publish stores a fresh snapshot for the partition. Blob objects are
// immutable: every publish writes a new uniquely named object, then the
// directory pointer is swapped and only afterwards is the previous object
// deleted, so a reader holding the old URL keeps a consistent view.
func (s *Service) Publish(ctx context.Context, partition Key, payload any) error {
	snapshot := Snapshot{
		Partition:   string(partition),
		GeneratedAt: time.Now().UTC(),
		Items:       payload,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot %q: %w", partition, err)
	}

	previous, err := s.directory.Get(ctx, string(partition))
	if err != nil {
		// losing track of the old blob only leaks one object; publishing
		// still proceeds
		log.Warn().Err(err).Str("partition", string(partition)).
			Msg("failed to read current pointer, skipping old blob cleanup")

		previous = ""
	}

	objectKey := fmt.Sprintf("%s_%s.json", partition, uuid.NewString())
	if err = s.blobs.Set(objectKey, data, 0); err != nil {
		return fmt.Errorf("store blob %q: %w", objectKey, err)
	}

	url := s.baseURL + "/" + objectKey
	if err = s.directory.Set(ctx, string(partition), url); err != nil {
		return fmt.Errorf("swap pointer %q: %w", partition, err)
	}

	if previous != "" && previous != url {
		if key, ok := s.objectKeyFromURL(previous); ok {
			if err = s.blobs.Delete(key); err != nil {
				log.Warn().Err(err).Str("object", key).
					Msg("failed to delete previous blob")
			}
		}
	}

	return nil
}

// CurrentPointer returns the URL currently published for the partition.
func (s *Service) CurrentPointer(ctx context.Context, partition Key) (string, error) {
	return s.directory.Get(ctx, string(partition))
}

// objectKeyFromURL recovers the blob object key from a published URL.
// Pointers written by a differently configured instance are left alone.
func (s *Service) objectKeyFromURL(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}

	return strings.TrimPrefix(url, prefix), true
}
