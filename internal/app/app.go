package app

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rdawebb/fixture-fetcher/external/footballdata"
	"github.com/rdawebb/fixture-fetcher/internal/config"
	"github.com/rdawebb/fixture-fetcher/internal/infrastructure/calendar"
	"github.com/rdawebb/fixture-fetcher/internal/infrastructure/overrides"
	"github.com/rdawebb/fixture-fetcher/internal/infrastructure/snapshot"
	"github.com/rdawebb/fixture-fetcher/internal/infrastructure/teamcache"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
	"github.com/rdawebb/fixture-fetcher/internal/platform/resilience"
	"github.com/rdawebb/fixture-fetcher/internal/usecase"
)

// App holds the wired components shared by the CLI commands. Components
// that call football-data are only handed out when a token is configured.
type App struct {
	Config    config.Config
	Logger    *logging.Logger
	Teams     *teamcache.Store
	Overrides *overrides.YAMLSource
	Snapshots *snapshot.FSStore
	Calendars *calendar.ICSWriter

	client *footballdata.Client
}

func New(cfg config.Config, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.Default()
	}

	teams := teamcache.NewStore(cfg.TeamCachePath, logger)
	client := footballdata.NewClient(footballdata.ClientConfig{
		HTTPClient: newHTTPClient(cfg),
		BaseURL:    cfg.FootballDataBaseURL,
		Token:      cfg.FootballDataToken,
		Timeout:    cfg.FootballDataTimeout,
		MaxRetries: cfg.FootballDataMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.Config{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
		Directory: teams,
		Cache:     teams,
	})

	return &App{
		Config:    cfg,
		Logger:    logger,
		Teams:     teams,
		Overrides: overrides.NewYAMLSource(logger),
		Snapshots: snapshot.NewFSStore(logger),
		Calendars: calendar.NewICSWriter(cfg.CalendarLocation, logger),
		client:    client,
	}
}

// Client returns the football-data client, failing when no API token is
// configured.
func (a *App) Client() (*footballdata.Client, error) {
	if err := a.Config.RequireAPIToken(); err != nil {
		return nil, err
	}
	if a.client == nil {
		return nil, fmt.Errorf("football-data client not configured")
	}
	return a.client, nil
}

func (a *App) BuildService() (*usecase.CalendarBuildService, error) {
	client, err := a.Client()
	if err != nil {
		return nil, err
	}
	return usecase.NewCalendarBuildService(
		client,
		a.Teams,
		client,
		usecase.NewEnrichmentService(a.Overrides, a.Logger),
		a.Snapshots,
		a.Calendars,
		a.Logger,
	), nil
}

// newHTTPClient traces outgoing football-data requests under the caller's
// span.
func newHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{
		Timeout: cfg.FootballDataTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return "football-data " + r.Method + " " + r.URL.Path
			}),
		),
	}
}
