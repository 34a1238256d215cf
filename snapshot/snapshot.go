// Package snapshot keeps the last successfully loaded first page of each feed
// in a bbolt file so lists can paint immediately on start, before the network
// refresh lands.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	pagesBucket    = "pages"
	metadataBucket = "metadata"
	schemaVersion  = 1
)

// ErrNotFound is returned when a feed has no snapshot yet.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one stored first page.
type Snapshot struct {
	Feed    string          `json:"feed"`
	Items   json.RawMessage `json:"items"`
	HasMore bool            `json:"has_more"`
	SavedAt time.Time       `json:"saved_at"`
}

// Store is a bbolt-backed snapshot store.
type Store struct {
	db  *bbolt.DB
	now func() time.Time
}

// Open opens (or creates) the snapshot file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(pagesBucket)); err != nil {
			return fmt.Errorf("create pages bucket: %w", err)
		}
		meta, err := tx.CreateBucketIfNotExists([]byte(metadataBucket))
		if err != nil {
			return fmt.Errorf("create metadata bucket: %w", err)
		}
		return meta.Put([]byte("schema_version"), []byte(fmt.Sprintf("%d", schemaVersion)))
	})
}

// Put replaces the snapshot of feed. items is marshalled as JSON.
func (s *Store) Put(feed string, items any, hasMore bool) error {
	if feed == "" {
		return errors.New("snapshot feed name cannot be empty")
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s items: %w", feed, err)
	}
	data, err := json.Marshal(Snapshot{Feed: feed, Items: raw, HasMore: hasMore, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", feed, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(pagesBucket))
		if b == nil {
			return fmt.Errorf("bucket not found: %s", pagesBucket)
		}
		return b.Put([]byte(feed), data)
	})
}

// Get returns the snapshot of feed, or ErrNotFound.
func (s *Store) Get(feed string) (*Snapshot, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(pagesBucket))
		if b == nil {
			return fmt.Errorf("bucket not found: %s", pagesBucket)
		}
		v := b.Get([]byte(feed))
		if v == nil {
			return ErrNotFound
		}
		// v is only valid inside the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal %s snapshot: %w", feed, err)
	}
	return &snap, nil
}

// Delete drops the snapshot of feed. Deleting a missing feed is not an error.
func (s *Store) Delete(feed string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(pagesBucket))
		if b == nil {
			return fmt.Errorf("bucket not found: %s", pagesBucket)
		}
		return b.Delete([]byte(feed))
	})
}

// Feeds lists the feeds that have a snapshot.
func (s *Store) Feeds() ([]string, error) {
	var feeds []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(pagesBucket))
		if b == nil {
			return fmt.Errorf("bucket not found: %s", pagesBucket)
		}
		return b.ForEach(func(k, _ []byte) error {
			feeds = append(feeds, string(k))
			return nil
		})
	})
	return feeds, err
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Decode unmarshals the stored items into T.
func Decode[T any](snap *Snapshot) ([]T, error) {
	return DecodeItems[T](snap.Feed, snap.Items)
}

// DecodeItems unmarshals raw snapshot items of feed into T.
func DecodeItems[T any](feed string, raw json.RawMessage) ([]T, error) {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s items: %w", feed, err)
	}
	return out, nil
}
