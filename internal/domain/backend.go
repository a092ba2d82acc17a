package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// UsersSource returns the decoded /api/users body, either from the live
// endpoint or from a stored snapshot.
type UsersSource interface {
	FetchUsers(ctx context.Context) (UsersResponse, error)
}

// UsersAPI is the live endpoint. FetchRaw exposes the undecoded body so it
// can be stored as a snapshot.
type UsersAPI interface {
	UsersSource
	FetchRaw(ctx context.Context) ([]byte, error)
}

// Sink receives the reported lines.
type Sink interface {
	Log(label, value string) error
}

type Snapshot struct {
	Name       string    `json:"name"`
	CapturedAt time.Time `json:"captured_at"`
	Body       []byte    `json:"body"`
}

type SnapshotStore interface {
	Save(ctx context.Context, name string, body []byte) error
	Load(ctx context.Context, name string) (Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
	Close() error
}
