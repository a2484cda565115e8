package app

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/rdawebb/fixture-fetcher/internal/config"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

func testConfig(t *testing.T, token string) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		FootballDataToken:               token,
		FootballDataTimeout:             time.Second,
		FootballDataCircuitFailureCount: 5,
		CacheDir:                        dir,
		TeamCachePath:                   filepath.Join(dir, "teams.yaml"),
		OutputDir:                       filepath.Join(dir, "calendars"),
		CalendarLocation:                time.UTC,
	}
}

func TestApp_RequiresTokenForAPICommands(t *testing.T) {
	t.Parallel()

	a := New(testConfig(t, ""), logging.NewNop())
	if _, err := a.Client(); err == nil {
		t.Fatalf("expected token error for client")
	}
	if _, err := a.BuildService(); err == nil {
		t.Fatalf("expected token error for build service")
	}
	if a.Teams == nil || a.Overrides == nil || a.Snapshots == nil || a.Calendars == nil {
		t.Fatalf("offline components must be wired without a token")
	}
}

func TestApp_BuildServiceWithToken(t *testing.T) {
	t.Parallel()

	a := New(testConfig(t, "token"), logging.NewNop())
	svc, err := a.BuildService()
	if err != nil || svc == nil {
		t.Fatalf("expected build service, got %v", err)
	}
}

func TestNewHTTPClient_TracesRequests(t *testing.T) {
	t.Parallel()

	client := newHTTPClient(testConfig(t, "token"))
	if client.Timeout != time.Second {
		t.Fatalf("unexpected timeout: %s", client.Timeout)
	}
	if client.Transport == nil || client.Transport == http.DefaultTransport {
		t.Fatalf("expected instrumented transport")
	}
}
