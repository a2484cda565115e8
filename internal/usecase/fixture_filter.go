package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
)

// FilterOptions selects the filters ApplyFilters runs, in the order
// scheduled, home, away, televised.
type FilterOptions struct {
	ScheduledOnly bool
	HomeOnly      bool
	AwayOnly      bool
	TelevisedOnly bool
}

func OnlyHome(fixtures []fixture.Fixture) []fixture.Fixture {
	return filterFixtures(fixtures, func(f fixture.Fixture) bool { return f.IsHome })
}

func OnlyAway(fixtures []fixture.Fixture) []fixture.Fixture {
	return filterFixtures(fixtures, func(f fixture.Fixture) bool { return !f.IsHome })
}

func OnlyScheduled(fixtures []fixture.Fixture) []fixture.Fixture {
	return filterFixtures(fixtures, fixture.Fixture.IsUpcoming)
}

func OnlyTelevised(fixtures []fixture.Fixture) []fixture.Fixture {
	return filterFixtures(fixtures, fixture.Fixture.IsTelevised)
}

func ByCompetition(fixtures []fixture.Fixture, code string) ([]fixture.Fixture, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: competition code is required", ErrInvalidInput)
	}
	return filterFixtures(fixtures, func(f fixture.Fixture) bool { return f.CompetitionCode == code }), nil
}

// ByDateRange keeps fixtures kicking off within [start, end]. TBC fixtures
// are never in range.
func ByDateRange(fixtures []fixture.Fixture, start, end time.Time) ([]fixture.Fixture, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	return filterFixtures(fixtures, func(f fixture.Fixture) bool {
		if !f.HasKickoff() {
			return false
		}
		return !f.KickoffAt.Before(start) && !f.KickoffAt.After(end)
	}), nil
}

func ApplyFilters(fixtures []fixture.Fixture, opts FilterOptions) []fixture.Fixture {
	out := append([]fixture.Fixture(nil), fixtures...)
	if opts.ScheduledOnly {
		out = OnlyScheduled(out)
	}
	if opts.HomeOnly {
		out = OnlyHome(out)
	}
	if opts.AwayOnly {
		out = OnlyAway(out)
	}
	if opts.TelevisedOnly {
		out = OnlyTelevised(out)
	}
	return out
}

func filterFixtures(fixtures []fixture.Fixture, keep func(fixture.Fixture) bool) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
