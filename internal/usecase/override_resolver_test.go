package usecase

import (
	"testing"
	"time"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/domain/override"
)

func kickoffAt(year int, month time.Month, day, hour, minute int) *time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestApplyOverrides_ExactIDFillsEmptyTV(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{{ID: "1", HomeTeam: "A", AwayTeam: "B", Status: fixture.StatusScheduled}}
	result := ApplyOverrides(fixtures, override.Set{{Key: "1", TV: "BBC One"}})

	if fixtures[0].TV != "BBC One" {
		t.Fatalf("expected tv to be set, got %q", fixtures[0].TV)
	}
	if result.Applied != 1 || result.Matched != 1 || result.Replaced != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestApplyOverrides_CompositeKeyMatch(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "99", HomeTeam: "Arsenal", AwayTeam: "Manchester United", KickoffAt: kickoffAt(2025, 11, 12, 20, 0)},
	}
	set := override.Set{{Key: "2025-11-12:Arsenal:Manchester United", TV: "Amazon Prime"}}

	result := ApplyOverrides(fixtures, set)
	if fixtures[0].TV != "Amazon Prime" {
		t.Fatalf("expected tv from composite key, got %q", fixtures[0].TV)
	}
	if result.Applied != 1 {
		t.Fatalf("expected one applied override, got %+v", result)
	}
}

func TestApplyOverrides_ExactIDWinsOverCompositeCollision(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "2025-11-12:A:B", HomeTeam: "C", AwayTeam: "D", KickoffAt: kickoffAt(2025, 11, 1, 15, 0)},
		{ID: "7", HomeTeam: "A", AwayTeam: "B", KickoffAt: kickoffAt(2025, 11, 12, 20, 0)},
	}
	ApplyOverrides(fixtures, override.Set{{Key: "2025-11-12:A:B", TV: "Sky Sports"}})

	if fixtures[0].TV != "Sky Sports" {
		t.Fatalf("expected exact id match to win, got %q", fixtures[0].TV)
	}
	if fixtures[1].TV != "" {
		t.Fatalf("composite candidate must stay untouched, got %q", fixtures[1].TV)
	}
}

func TestApplyOverrides_ReplacementIsAppliedButCountedSeparately(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "1", TV: "Sky Sports"},
		{ID: "2", TV: "TNT Sports"},
	}
	result := ApplyOverrides(fixtures, override.Set{
		{Key: "1", TV: "Amazon Prime"},
		{Key: "2", TV: "TNT Sports"},
	})

	if fixtures[0].TV != "Amazon Prime" {
		t.Fatalf("expected replacement to be applied, got %q", fixtures[0].TV)
	}
	if result.Applied != 0 || result.Replaced != 1 || result.Matched != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestApplyOverrides_FirstCompositeMatchWins(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "1", HomeTeam: "A", AwayTeam: "B", KickoffAt: kickoffAt(2025, 12, 26, 12, 30)},
		{ID: "2", HomeTeam: "A", AwayTeam: "B", KickoffAt: kickoffAt(2025, 12, 26, 17, 30)},
	}
	result := ApplyOverrides(fixtures, override.Set{{Key: "2025-12-26:A:B", TV: "Sky Sports"}})

	if fixtures[0].TV != "Sky Sports" || fixtures[1].TV != "" {
		t.Fatalf("expected only the first fixture to be enriched: %+v", fixtures)
	}
	if result.Applied != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestApplyOverrides_DuplicateIDLastFixtureWins(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "7", HomeTeam: "A", AwayTeam: "B"},
		{ID: "7", HomeTeam: "A", AwayTeam: "B"},
	}
	result := ApplyOverrides(fixtures, override.Set{{Key: "7", TV: "Sky Sports"}})

	if fixtures[0].TV != "" || fixtures[1].TV != "Sky Sports" {
		t.Fatalf("expected only the last duplicate to be updated, got %q and %q", fixtures[0].TV, fixtures[1].TV)
	}
	if result.Matched != 1 || result.Applied != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestApplyOverrides_WhitespaceTVIsAppliedVerbatim(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "1", HomeTeam: "A", AwayTeam: "B"},
	}
	result := ApplyOverrides(fixtures, override.Set{{Key: "1", TV: " "}})

	if fixtures[0].TV != " " {
		t.Fatalf("expected raw tv value, got %q", fixtures[0].TV)
	}
	if result.Applied != 1 || result.Matched != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestApplyOverrides_InertAndUnmatchedEntries(t *testing.T) {
	t.Parallel()

	fixtures := []fixture.Fixture{
		{ID: "1", HomeTeam: "A", AwayTeam: "B"},
	}
	result := ApplyOverrides(fixtures, override.Set{
		{Key: "1", TV: ""},
		{Key: "404", TV: "BBC One"},
		{Key: "2025-11-12:A:B", TV: "ITV"},
	})

	if fixtures[0].TV != "" {
		t.Fatalf("expected no mutation, got %q", fixtures[0].TV)
	}
	if result != (OverrideResult{}) {
		t.Fatalf("expected zero result, got %+v", result)
	}

	if got := ApplyOverrides(fixtures, nil); got != (OverrideResult{}) {
		t.Fatalf("expected zero result for empty set, got %+v", got)
	}
}
