package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/h2hsecure/tokenreport/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketSnapshots = "snapshots"
)

func NewBoltDB(path string, readOnly bool) (domain.SnapshotStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("db open: path '%s' %w", path, err)
	}

	if readOnly {
		return &boltAdapter{db: db}, nil
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &boltAdapter{db: db}, nil
}

type boltAdapter struct {
	db *bolt.DB
}

func (b *boltAdapter) Close() error {
	return b.db.Close()
}

// Save implements SnapshotStore. An existing snapshot with the same name is
// replaced.
func (b *boltAdapter) Save(ctx context.Context, name string, body []byte) error {
	m, err := json.Marshal(domain.Snapshot{
		Name:       name,
		CapturedAt: time.Now().UTC(),
		Body:       body,
	})
	if err != nil {
		return fmt.Errorf("db value marshal: %w", err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket == nil {
			return fmt.Errorf("db bucket not found: %s", bucketSnapshots)
		}
		return bucket.Put([]byte(name), m)
	})
	if err != nil {
		return fmt.Errorf("db put: %w", err)
	}

	return nil
}

// Load implements SnapshotStore.
func (b *boltAdapter) Load(ctx context.Context, name string) (domain.Snapshot, error) {
	var snapshot domain.Snapshot

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket == nil {
			return fmt.Errorf("snapshot not found: %s: %w", name, domain.ErrNotFound)
		}

		v := bucket.Get([]byte(name))
		if v == nil {
			return fmt.Errorf("snapshot not found: %s: %w", name, domain.ErrNotFound)
		}

		if err := json.Unmarshal(v, &snapshot); err != nil {
			return fmt.Errorf("db value unmarshal: %w", err)
		}
		return nil
	})

	return snapshot, err
}

// List implements SnapshotStore. Snapshots come back ordered by name.
func (b *boltAdapter) List(ctx context.Context) ([]domain.Snapshot, error) {
	var ret []domain.Snapshot

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSnapshots))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var snapshot domain.Snapshot
			if err := json.Unmarshal(v, &snapshot); err != nil {
				return fmt.Errorf("db value unmarshal %s: %w", k, err)
			}
			ret = append(ret, snapshot)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("db foreach: %w", err)
	}

	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })

	return ret, nil
}
