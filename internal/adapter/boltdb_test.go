package adapter_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/h2hsecure/tokenreport/internal/adapter"
	"github.com/h2hsecure/tokenreport/internal/domain"
	. "github.com/onsi/gomega"
)

func openTestDB(t *testing.T) domain.SnapshotStore {
	db, err := adapter.NewBoltDB(filepath.Join(t.TempDir(), "snapshots.db"), false)
	Expect(err).To(BeNil())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	RegisterTestingT(t)
	db := openTestDB(t)
	ctx := context.Background()

	err := db.Save(ctx, "morning", []byte(`{"users":[]}`))
	Expect(err).To(BeNil())

	snapshot, err := db.Load(ctx, "morning")
	Expect(err).To(BeNil())
	Expect(snapshot.Name).To(Equal("morning"))
	Expect(string(snapshot.Body)).To(Equal(`{"users":[]}`))
	Expect(snapshot.CapturedAt.IsZero()).To(BeFalse())
}

func TestLoadMissingSnapshot(t *testing.T) {
	RegisterTestingT(t)
	db := openTestDB(t)

	_, err := db.Load(context.Background(), "nope")

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func TestListSnapshots(t *testing.T) {
	RegisterTestingT(t)
	db := openTestDB(t)
	ctx := context.Background()

	Expect(db.Save(ctx, "b", []byte(`{}`))).To(Succeed())
	Expect(db.Save(ctx, "a", []byte(`{}`))).To(Succeed())
	Expect(db.Save(ctx, "b", []byte(`{"users":[]}`))).To(Succeed())

	snapshots, err := db.List(ctx)
	Expect(err).To(BeNil())
	Expect(snapshots).To(HaveLen(2))
	Expect(snapshots[0].Name).To(Equal("a"))
	Expect(string(snapshots[1].Body)).To(Equal(`{"users":[]}`))
}
