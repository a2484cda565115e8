package snapshot

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	domainsnapshot "github.com/rdawebb/fixture-fetcher/internal/domain/snapshot"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
	"github.com/rdawebb/fixture-fetcher/internal/usecase"
)

// FSStore keeps one JSON snapshot file per team and competition.
type FSStore struct {
	logger *logging.Logger
}

func NewFSStore(logger *logging.Logger) *FSStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FSStore{logger: logger}
}

// Save writes fixtures keyed by id as indented JSON with sorted keys,
// creating parent directories as needed.
func (s *FSStore) Save(ctx context.Context, path string, fixtures []fixture.Fixture) error {
	if path == "" {
		return crerr.Mark(crerr.New("snapshot path required"), usecase.ErrDataProcessing)
	}

	data, err := sonic.ConfigStd.MarshalIndent(domainsnapshot.FromFixtures(fixtures), "", "  ")
	if err != nil {
		return crerr.Mark(crerr.Wrapf(err, "encode snapshot %s", path), usecase.ErrDataProcessing)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "create snapshot dir for %s", path), usecase.ErrDataProcessing)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "write snapshot %s", path), usecase.ErrDataProcessing)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return crerr.Mark(crerr.Wrapf(err, "replace snapshot %s", path), usecase.ErrDataProcessing)
	}

	s.logger.DebugContext(ctx, "snapshot saved", "path", path, "fixtures", len(fixtures))
	return nil
}

// Load returns the snapshot at path. A missing file is the first-run state
// and a corrupt file is treated as no history; neither is an error.
func (s *FSStore) Load(ctx context.Context, path string) domainsnapshot.Snapshot {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.DebugContext(ctx, "no previous snapshot", "path", path)
		} else {
			s.logger.WarnContext(ctx, "snapshot unreadable, starting fresh", "path", path, "error", err)
		}
		return domainsnapshot.Snapshot{}
	}

	var snap domainsnapshot.Snapshot
	if err := sonic.ConfigStd.Unmarshal(data, &snap); err != nil {
		s.logger.WarnContext(ctx, "snapshot corrupt, starting fresh", "path", path, "error", err)
		return domainsnapshot.Snapshot{}
	}
	if snap == nil {
		return domainsnapshot.Snapshot{}
	}
	return snap
}
