package snapshot

import (
	"context"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
)

// Store persists snapshots. Load never fails: a missing or unreadable
// snapshot is reported as empty.
type Store interface {
	Save(ctx context.Context, path string, fixtures []fixture.Fixture) error
	Load(ctx context.Context, path string) Snapshot
}
