package calendar

import (
	"context"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
)

// Writer renders fixtures to a calendar file and returns the path written.
type Writer interface {
	Write(ctx context.Context, fixtures []fixture.Fixture, path string) (string, error)
}
