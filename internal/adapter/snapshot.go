package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/h2hsecure/tokenreport/internal/domain"
)

const SnapshotEnvKey = "USERS_RESPONSE_B64"

// SnapshotSource replays a stored /api/users body in place of the live
// endpoint.
type SnapshotSource struct {
	store domain.SnapshotStore
	name  string
}

func NewSnapshotSource(store domain.SnapshotStore, name string) domain.UsersSource {
	return &SnapshotSource{store: store, name: name}
}

// FetchUsers implements domain.UsersSource.
func (s *SnapshotSource) FetchUsers(ctx context.Context) (domain.UsersResponse, error) {
	snapshot, err := s.store.Load(ctx, s.name)
	if err != nil {
		return domain.UsersResponse{}, err
	}

	return domain.DecodeUsers(snapshot.Body)
}

// CaptureSnapshot fetches the raw body once and stores it under name. Bodies
// that are not JSON are rejected so a replay cannot fail on decode.
func CaptureSnapshot(ctx context.Context, api domain.UsersAPI, store domain.SnapshotStore, name string) error {
	body, err := api.FetchRaw(ctx)
	if err != nil {
		return fmt.Errorf("fetch users: %w", err)
	}

	if !json.Valid(body) {
		return fmt.Errorf("snapshot %s: response is not valid JSON", name)
	}

	if err := store.Save(ctx, name, body); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

// ExportLine renders a snapshot as a KEY=base64 line for env files.
func ExportLine(snapshot domain.Snapshot) string {
	return fmt.Sprintf("%s=%s", SnapshotEnvKey, base64.StdEncoding.EncodeToString(snapshot.Body))
}
