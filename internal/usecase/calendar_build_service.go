package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rdawebb/fixture-fetcher/internal/domain/calendar"
	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/domain/snapshot"
	"github.com/rdawebb/fixture-fetcher/internal/domain/team"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
)

type BuildRequest struct {
	Teams         []string `validate:"dive,required"`
	League        string
	Competitions  []string `validate:"dive,required,alphanum,max=8"`
	Season        int      `validate:"omitempty,min=1900,max=2100"`
	HomeOnly      bool
	AwayOnly      bool
	TelevisedOnly bool
	OutputDir     string `validate:"required"`
	OverridesPath string
	CacheDir      string `validate:"required"`
	RefreshCache  bool
}

// CompetitionBuild describes one calendar written for a team.
type CompetitionBuild struct {
	Team            string           `json:"team"`
	League          string           `json:"league"`
	Competition     string           `json:"competition"`
	CompetitionCode string           `json:"competition_code"`
	OutputPath      string           `json:"output_path"`
	SnapshotPath    string           `json:"snapshot_path"`
	Fixtures        int              `json:"fixtures"`
	Written         int              `json:"written"`
	Enrichment      EnrichmentStats  `json:"enrichment"`
	Changes         snapshot.Changes `json:"changes"`
}

// TeamFailure records a team, or one competition of a team, that could not
// be built. Competition is empty for team-level failures.
type TeamFailure struct {
	Team        string
	Competition string
	Err         error
}

func (f TeamFailure) Error() string {
	if f.Competition == "" {
		return fmt.Sprintf("%s: %v", f.Team, f.Err)
	}
	return fmt.Sprintf("%s %s: %v", f.Team, f.Competition, f.Err)
}

type BuildResult struct {
	Successful []CompetitionBuild
	Failed     []TeamFailure
	Total      int
}

// Succeeded reports whether at least one calendar was built.
func (r BuildResult) Succeeded() bool {
	return len(r.Successful) > 0
}

type CalendarBuildService struct {
	provider  fixture.Provider
	directory team.Directory
	refresher team.Refresher
	enricher  *EnrichmentService
	snapshots snapshot.Store
	writer    calendar.Writer
	validator *validator.Validate
	logger    *logging.Logger
}

func NewCalendarBuildService(
	provider fixture.Provider,
	directory team.Directory,
	refresher team.Refresher,
	enricher *EnrichmentService,
	snapshots snapshot.Store,
	writer calendar.Writer,
	logger *logging.Logger,
) *CalendarBuildService {
	if logger == nil {
		logger = logging.Default()
	}
	if enricher == nil {
		enricher = NewEnrichmentService(nil, logger)
	}

	return &CalendarBuildService{
		provider:  provider,
		directory: directory,
		refresher: refresher,
		enricher:  enricher,
		snapshots: snapshots,
		writer:    writer,
		validator: validator.New(),
		logger:    logger,
	}
}

// Build writes one calendar per team and competition. Per-team and
// per-competition failures are collected in the result; an error is only
// returned for an unusable request.
func (s *CalendarBuildService) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarBuildService.Build")
	defer span.End()

	req = normalizeBuildRequest(req)
	if err := s.validator.StructCtx(ctx, req); err != nil {
		recordSpanError(span, err)
		return BuildResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(req.Teams) == 0 && req.League == "" {
		return BuildResult{}, fmt.Errorf("%w: at least one team or a league is required", ErrInvalidInput)
	}

	s.refreshTeamCache(ctx, req.RefreshCache)

	teams, err := s.expandTeams(ctx, req)
	if err != nil {
		recordSpanError(span, err)
		return BuildResult{}, err
	}
	if len(teams) == 0 {
		return BuildResult{}, fmt.Errorf("%w: no teams to build", ErrInvalidInput)
	}

	result := BuildResult{Total: len(teams)}
	for _, name := range teams {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, TeamFailure{Team: name, Err: err})
			continue
		}
		s.buildTeam(ctx, req, name, &result)
	}

	span.SetAttributes(
		attribute.Int("teams", result.Total),
		attribute.Int("successful", len(result.Successful)),
		attribute.Int("failed", len(result.Failed)),
	)
	s.logger.InfoContext(ctx, "calendar build finished",
		"teams", result.Total,
		"successful", len(result.Successful),
		"failed", len(result.Failed),
	)
	return result, nil
}

func (s *CalendarBuildService) refreshTeamCache(ctx context.Context, force bool) {
	if s.refresher == nil {
		return
	}
	if !force && s.directory.Exists() {
		return
	}

	count, err := s.refresher.RefreshTeams(ctx, fixture.DefaultCompetitionCodes)
	if err != nil {
		s.logger.ErrorContext(ctx, "refresh team cache failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "team cache refreshed", "teams", count)
}

func (s *CalendarBuildService) expandTeams(ctx context.Context, req BuildRequest) ([]string, error) {
	teams := append([]string(nil), req.Teams...)
	if req.League != "" {
		members, err := s.directory.TeamsInLeague(ctx, req.League)
		if err != nil {
			return nil, fmt.Errorf("list teams of league=%s: %w", req.League, err)
		}
		for _, member := range members {
			teams = append(teams, member.Name)
		}
	}
	return uniqueStrings(teams), nil
}

func (s *CalendarBuildService) buildTeam(ctx context.Context, req BuildRequest, name string, result *BuildResult) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarBuildService.buildTeam", attribute.String("team", name))
	defer span.End()

	tm, err := s.directory.Lookup(ctx, name)
	if err != nil {
		recordSpanError(span, err)
		s.logger.ErrorContext(ctx, "resolve team failed", "team", name, "error", err)
		result.Failed = append(result.Failed, TeamFailure{Team: name, Err: err})
		return
	}

	fixtures, err := s.provider.FetchFixtures(ctx, tm.Name, req.Competitions, req.Season)
	if err != nil {
		recordSpanError(span, err)
		s.logger.ErrorContext(ctx, "fetch fixtures failed", "team", tm.DisplayName(), "error", err)
		result.Failed = append(result.Failed, TeamFailure{Team: tm.DisplayName(), Err: err})
		return
	}

	groups := groupByCompetition(OnlyScheduled(fixtures))
	if len(groups) == 0 {
		s.logger.WarnContext(ctx, "no scheduled fixtures", "team", tm.DisplayName())
		return
	}

	for _, group := range groups {
		build, err := s.buildCompetition(ctx, req, tm, group)
		if err != nil {
			err = crerr.Mark(crerr.Wrapf(err, "build calendar team=%s competition=%s", tm.DisplayName(), group.code), ErrCalendarBuild)
			recordSpanError(span, err)
			s.logger.ErrorContext(ctx, "build calendar failed",
				"team", tm.DisplayName(),
				"competition", group.code,
				"error", err,
			)
			result.Failed = append(result.Failed, TeamFailure{Team: tm.DisplayName(), Competition: group.code, Err: err})
			continue
		}
		result.Successful = append(result.Successful, build)
	}
}

func (s *CalendarBuildService) buildCompetition(ctx context.Context, req BuildRequest, tm team.Team, group competitionGroup) (CompetitionBuild, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarBuildService.buildCompetition",
		attribute.String("team", tm.DisplayName()),
		attribute.String("competition", group.code),
	)
	defer span.End()

	snapPath := SnapshotPath(req.CacheDir, tm, group.code)
	outPath := CalendarPath(req.OutputDir, tm, group.code)

	prev := s.snapshots.Load(ctx, snapPath)
	stats := s.enricher.EnrichAll(ctx, group.fixtures, req.OverridesPath)

	filtered := ApplyFilters(group.fixtures, FilterOptions{
		HomeOnly:      req.HomeOnly,
		AwayOnly:      req.AwayOnly,
		TelevisedOnly: req.TelevisedOnly,
	})

	written, err := s.writer.Write(ctx, filtered, outPath)
	if err != nil {
		recordSpanError(span, err)
		return CompetitionBuild{}, err
	}
	s.logger.InfoContext(ctx, "calendar written",
		"team", tm.DisplayName(),
		"competition", group.code,
		"fixtures", len(filtered),
		"path", written,
	)

	changes := snapshot.Diff(group.fixtures, prev)
	if err := s.snapshots.Save(ctx, snapPath, group.fixtures); err != nil {
		recordSpanError(span, err)
		return CompetitionBuild{}, err
	}

	return CompetitionBuild{
		Team:            tm.DisplayName(),
		League:          tm.League,
		Competition:     group.name,
		CompetitionCode: group.code,
		OutputPath:      written,
		SnapshotPath:    snapPath,
		Fixtures:        len(group.fixtures),
		Written:         len(filtered),
		Enrichment:      stats,
		Changes:         changes,
	}, nil
}

type competitionGroup struct {
	code     string
	name     string
	fixtures []fixture.Fixture
}

// groupByCompetition keeps the order in which codes are first seen.
func groupByCompetition(fixtures []fixture.Fixture) []competitionGroup {
	index := make(map[string]int)
	groups := make([]competitionGroup, 0)
	for _, f := range fixtures {
		i, ok := index[f.CompetitionCode]
		if !ok {
			i = len(groups)
			index[f.CompetitionCode] = i
			name := f.Competition
			if name == "" {
				name = fixture.CompetitionName(f.CompetitionCode)
			}
			groups = append(groups, competitionGroup{code: f.CompetitionCode, name: name})
		}
		groups[i].fixtures = append(groups[i].fixtures, f)
	}
	return groups
}

func normalizeBuildRequest(req BuildRequest) BuildRequest {
	req.Teams = trimNonEmpty(req.Teams)
	req.League = strings.TrimSpace(req.League)
	req.OutputDir = strings.TrimSpace(req.OutputDir)
	req.OverridesPath = strings.TrimSpace(req.OverridesPath)
	req.CacheDir = strings.TrimSpace(req.CacheDir)

	comps := trimNonEmpty(req.Competitions)
	for i := range comps {
		comps[i] = strings.ToUpper(comps[i])
	}
	req.Competitions = uniqueStrings(comps)
	return req
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
