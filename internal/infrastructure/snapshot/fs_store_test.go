package snapshot

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	domainsnapshot "github.com/rdawebb/fixture-fetcher/internal/domain/snapshot"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
	"github.com/rdawebb/fixture-fetcher/internal/usecase"
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

func TestFSStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshots", "premier-league", "arsenal", "arsenal.pl.json")
	store := NewFSStore(logging.NewNop())
	fixtures := sampleFixtures()

	if err := store.Save(ctx, path, fixtures); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	loaded := store.Load(ctx, path)
	if len(loaded) != 2 {
		t.Fatalf("unexpected snapshot size: %d", len(loaded))
	}
	rec := loaded["537785"]
	if rec.ID != "537785" || rec.HomeTeam != "Arsenal" || rec.AwayTeam != "Man United" || rec.Status != fixture.StatusTimed {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.UTCKickoff == nil || *rec.UTCKickoff != "2025-11-12T20:00:00+00:00" {
		t.Fatalf("unexpected kickoff: %v", rec.UTCKickoff)
	}
	if rec.Venue == nil || *rec.Venue != "Emirates Stadium" {
		t.Fatalf("unexpected venue: %v", rec.Venue)
	}

	if changes := domainsnapshot.Diff(fixtures, loaded); !changes.IsZero() {
		t.Fatalf("diff against freshly saved snapshot must be zero, got %+v", changes)
	}
}

func TestFSStore_SaveWritesSortedIndentedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snap.json")
	store := NewFSStore(logging.NewNop())
	if err := store.Save(context.Background(), path, sampleFixtures()[1:]); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "\n  \"537790\": {\n    \"away_team\": \"Arsenal\"") {
		t.Fatalf("expected indented output keyed by id, got %s", out)
	}
	for _, want := range []string{`"tv": null`, `"utc_kickoff": null`, `"venue": null`, `"matchday": null`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
	if strings.Index(out, `"home_team"`) > strings.Index(out, `"venue"`) {
		t.Fatalf("expected keys in sorted order: %s", out)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temporary file must not remain, stat err=%v", err)
	}
}

func TestFSStore_SaveIsDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFSStore(logging.NewNop())
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	fixtures := sampleFixtures()
	reversed := []fixture.Fixture{fixtures[1], fixtures[0]}
	if err := store.Save(context.Background(), first, fixtures); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(context.Background(), second, reversed); err != nil {
		t.Fatalf("save second: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Fatalf("snapshot output depends on input order:\n%s\n---\n%s", a, b)
	}
}

func TestFSStore_LoadMissingAndCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFSStore(logging.NewNop())

	if got := store.Load(context.Background(), filepath.Join(dir, "missing.json")); got == nil || len(got) != 0 {
		t.Fatalf("expected empty snapshot for missing file, got %v", got)
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if got := store.Load(context.Background(), corrupt); len(got) != 0 {
		t.Fatalf("expected empty snapshot for corrupt file, got %v", got)
	}

	list := filepath.Join(dir, "list.json")
	if err := os.WriteFile(list, []byte(`["537785"]`), 0o644); err != nil {
		t.Fatalf("write list file: %v", err)
	}
	if got := store.Load(context.Background(), list); len(got) != 0 {
		t.Fatalf("expected empty snapshot for unexpected shape, got %v", got)
	}
}

func TestFSStore_SaveFailureIsDataProcessing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	err := NewFSStore(logging.NewNop()).Save(context.Background(), filepath.Join(blocker, "nested", "snap.json"), sampleFixtures())
	if err == nil {
		t.Fatalf("expected save error when parent is a file")
	}
	if !crerr.Is(err, usecase.ErrDataProcessing) {
		t.Fatalf("expected ErrDataProcessing, got %v", err)
	}
}
