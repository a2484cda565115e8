package overrides

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/domain/override"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestYAMLSource_LoadPreservesOrderAndSkipsMalformed(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "tv_overrides.yaml", `
537785:
  tv: BBC One
"2025-11-12:Arsenal:Manchester United":
  tv: " Amazon Prime "
  game: Arsenal vs Manchester United
no_tv:
  game: Spurs vs Arsenal
scalar: Sky Sports
list:
  - tv
blank:
  tv: ""
`)

	set, found, err := NewYAMLSource(logging.NewNop()).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load overrides: %v", err)
	}
	if !found {
		t.Fatalf("expected overrides file to be found")
	}

	want := override.Set{
		{Key: "537785", TV: "BBC One"},
		{Key: "2025-11-12:Arsenal:Manchester United", TV: " Amazon Prime "},
		{Key: "blank", TV: ""},
	}
	if len(set) != len(want) {
		t.Fatalf("unexpected entries: %+v", set)
	}
	for i := range want {
		if set[i] != want[i] {
			t.Fatalf("entry %d: got %+v want %+v", i, set[i], want[i])
		}
	}
}

func TestYAMLSource_LoadMissingOrEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := NewYAMLSource(logging.NewNop())

	for _, path := range []string{"", filepath.Join(dir, "missing.yaml")} {
		set, found, err := source.Load(context.Background(), path)
		if err != nil || found || set != nil {
			t.Fatalf("path %q: expected not found without error, got set=%v found=%t err=%v", path, set, found, err)
		}
	}

	empty := writeFile(t, dir, "empty.yaml", "")
	set, found, err := source.Load(context.Background(), empty)
	if err != nil || !found || len(set) != 0 {
		t.Fatalf("expected empty set for empty file, got set=%v found=%t err=%v", set, found, err)
	}
}

func TestYAMLSource_LoadInvalidDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := NewYAMLSource(logging.NewNop())

	broken := writeFile(t, dir, "broken.yaml", "a: [unclosed")
	if _, _, err := source.Load(context.Background(), broken); err == nil {
		t.Fatalf("expected parse error")
	}

	list := writeFile(t, dir, "list.yaml", "- tv: BBC One\n")
	if _, _, err := source.Load(context.Background(), list); err == nil {
		t.Fatalf("expected error for top-level list")
	}
}

func TestWriteTemplate_RoundTripsThroughSource(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, 11, 12, 20, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{
		{ID: "537790", HomeTeam: "Spurs", AwayTeam: "Arsenal"},
		{ID: "537785", HomeTeam: "Arsenal", AwayTeam: "Man United", KickoffAt: &kickoff},
	}
	path := filepath.Join(t.TempDir(), "overrides", "template.yaml")

	if err := WriteTemplate(path, fixtures); err != nil {
		t.Fatalf("write template: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"537790":`, "game: Spurs vs Arsenal", "date: 2025-11-12 20:00", `tv: ""`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in template:\n%s", want, out)
		}
	}
	if strings.Index(out, "537790") > strings.Index(out, "537785") {
		t.Fatalf("template must keep fixture order:\n%s", out)
	}

	set, found, err := NewYAMLSource(logging.NewNop()).Load(context.Background(), path)
	if err != nil || !found {
		t.Fatalf("load template: found=%t err=%v", found, err)
	}
	if len(set) != 2 || set[0].Key != "537790" || set[0].Active() {
		t.Fatalf("unexpected template entries: %+v", set)
	}
}
