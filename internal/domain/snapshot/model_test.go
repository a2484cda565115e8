package snapshot

import (
	"testing"
	"time"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
)

func sampleFixtures() []fixture.Fixture {
	kickoff := time.Date(2025, 11, 12, 20, 0, 0, 0, time.UTC)
	matchday := 12
	return []fixture.Fixture{
		{
			ID:              "537785",
			Competition:     "Premier League",
			CompetitionCode: "PL",
			Matchday:        &matchday,
			KickoffAt:       &kickoff,
			HomeTeam:        "Arsenal",
			AwayTeam:        "Man United",
			Venue:           "Emirates Stadium",
			Status:          fixture.StatusTimed,
			TV:              "Sky Sports",
			IsHome:          true,
		},
		{
			ID:              "537790",
			Competition:     "Premier League",
			CompetitionCode: "PL",
			HomeTeam:        "Chelsea",
			AwayTeam:        "Arsenal",
			Status:          fixture.StatusScheduled,
		},
	}
}

func TestDiff_UnchangedFixturesAreZero(t *testing.T) {
	t.Parallel()

	fixtures := sampleFixtures()
	changes := Diff(fixtures, FromFixtures(fixtures))
	if !changes.IsZero() {
		t.Fatalf("expected no changes, got %+v", changes)
	}
}

func TestDiff_NewFixturesAreSilent(t *testing.T) {
	t.Parallel()

	for _, f := range sampleFixtures() {
		if changes := Diff([]fixture.Fixture{f}, Snapshot{}); !changes.IsZero() {
			t.Fatalf("fixture %s: expected zero changes against empty snapshot, got %+v", f.ID, changes)
		}
	}

	prev := FromFixtures(sampleFixtures()[:1])
	changes := Diff(sampleFixtures(), prev)
	if !changes.IsZero() {
		t.Fatalf("fixture missing from snapshot must not count, got %+v", changes)
	}
}

func TestDiff_SingleFieldChangeIncrementsOneCounter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*fixture.Fixture)
		want   Changes
	}{
		{
			name: "kickoff moved",
			mutate: func(f *fixture.Fixture) {
				moved := f.KickoffAt.Add(90 * time.Minute)
				f.KickoffAt = &moved
			},
			want: Changes{Time: 1},
		},
		{
			name:   "kickoff now tbc",
			mutate: func(f *fixture.Fixture) { f.KickoffAt = nil },
			want:   Changes{Time: 1},
		},
		{
			name:   "venue changed",
			mutate: func(f *fixture.Fixture) { f.Venue = "Wembley Stadium" },
			want:   Changes{Venue: 1},
		},
		{
			name:   "status changed",
			mutate: func(f *fixture.Fixture) { f.Status = fixture.StatusPostponed },
			want:   Changes{Status: 1},
		},
		{
			name:   "broadcaster removed",
			mutate: func(f *fixture.Fixture) { f.TV = "" },
			want:   Changes{TV: 1},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			prev := FromFixtures(sampleFixtures())
			current := sampleFixtures()
			tc.mutate(&current[0])

			got := Diff(current, prev)
			if got != tc.want {
				t.Fatalf("unexpected changes: got=%+v want=%+v", got, tc.want)
			}
			if got.Total() != 1 {
				t.Fatalf("expected exactly one change, got %d", got.Total())
			}
		})
	}
}

func TestNewRecord_OptionalFieldsAreNil(t *testing.T) {
	t.Parallel()

	rec := NewRecord(sampleFixtures()[1])
	if rec.UTCKickoff != nil || rec.Venue != nil || rec.TV != nil || rec.Matchday != nil {
		t.Fatalf("expected nil optional fields, got %+v", rec)
	}

	rec = NewRecord(sampleFixtures()[0])
	if rec.UTCKickoff == nil || *rec.UTCKickoff != "2025-11-12T20:00:00+00:00" {
		t.Fatalf("unexpected kickoff projection: %v", rec.UTCKickoff)
	}
	if rec.Matchday == nil || *rec.Matchday != 12 {
		t.Fatalf("unexpected matchday projection: %v", rec.Matchday)
	}
}
