package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/rdawebb/fixture-fetcher/internal/domain/fixture"
	"github.com/rdawebb/fixture-fetcher/internal/domain/team"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
	"github.com/rdawebb/fixture-fetcher/internal/platform/resilience"
	"github.com/rdawebb/fixture-fetcher/internal/usecase"
)

const (
	defaultBaseURL      = "https://api.football-data.org/v4"
	defaultTimeout      = 10 * time.Second
	defaultRetryBackoff = time.Second
	defaultMaxRetryWait = time.Minute
	authHeader          = "X-Auth-Token"
	resetHeader         = "X-RequestCounter-Reset"
	maxBodyBytes        = 8 << 20
)

// TeamCacheWriter persists the team cache built by RefreshTeams.
type TeamCacheWriter interface {
	Save(ctx context.Context, leagues []team.League) error
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	MaxRetryWait   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.Config
	Directory      team.Directory
	Cache          TeamCacheWriter
}

// Client talks to the football-data.org v4 API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	maxRetries   int
	retryBackoff time.Duration
	maxRetryWait time.Duration
	logger       *logging.Logger
	breaker      *resilience.Breaker
	directory    team.Directory
	cache        TeamCacheWriter
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	maxWait := cfg.MaxRetryWait
	if maxWait <= 0 {
		maxWait = defaultMaxRetryWait
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.Token),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		maxRetryWait: maxWait,
		logger:       logger,
		breaker:      resilience.New(cfg.CircuitBreaker),
		directory:    cfg.Directory,
		cache:        cfg.Cache,
	}
}

// FetchFixtures returns the matches of teamName in the requested
// competitions, or in the default catalogue when none are given. IsHome is
// decided by team id.
func (c *Client) FetchFixtures(ctx context.Context, teamName string, competitions []string, season int) ([]fixture.Fixture, error) {
	if c.directory == nil {
		return nil, crerr.Mark(crerr.New("team directory not configured"), usecase.ErrDependencyUnavailable)
	}
	tm, err := c.directory.Lookup(ctx, teamName)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if season > 0 {
		query.Set("season", strconv.Itoa(season))
	}

	var payload matchesEnvelope
	path := fmt.Sprintf("/teams/%d/matches", tm.ID)
	if err := c.doJSON(ctx, path, query, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch matches team=%s id=%d", tm.DisplayName(), tm.ID)
	}

	allowed := allowedCompetitions(competitions)
	fixtures := make([]fixture.Fixture, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		code := strings.ToUpper(strings.TrimSpace(m.Competition.Code))
		if _, ok := allowed[code]; !ok {
			c.logger.DebugContext(ctx, "skipping match outside requested competitions", "match_id", m.ID, "competition", code)
			continue
		}

		f := c.mapMatch(ctx, m, tm.ID)
		if err := f.Validate(); err != nil {
			c.logger.WarnContext(ctx, "skipping invalid match record", "match_id", m.ID, "error", err)
			continue
		}
		fixtures = append(fixtures, f)
	}

	c.logger.InfoContext(ctx, "fetched fixtures",
		"team", tm.DisplayName(),
		"team_id", tm.ID,
		"matches", len(payload.Matches),
		"fixtures", len(fixtures),
	)
	return fixtures, nil
}

// RefreshTeams rebuilds the team cache from the teams of each competition.
// Competitions the token cannot access are skipped.
func (c *Client) RefreshTeams(ctx context.Context, competitions []string) (int, error) {
	if c.cache == nil {
		return 0, crerr.Mark(crerr.New("team cache not configured"), usecase.ErrDependencyUnavailable)
	}
	if len(competitions) == 0 {
		competitions = fixture.DefaultCompetitionCodes
	}

	leagues := make([]team.League, 0, len(competitions))
	total := 0
	for _, raw := range competitions {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if code == "" {
			continue
		}

		var payload teamsEnvelope
		if err := c.doJSON(ctx, "/competitions/"+url.PathEscape(code)+"/teams", nil, &payload); err != nil {
			if crerr.Is(err, ErrUnauthorized) || crerr.Is(err, ErrNotFound) {
				c.logger.WarnContext(ctx, "skipping competition for team cache", "competition", code, "error", err)
				continue
			}
			return 0, crerr.Wrapf(err, "fetch teams competition=%s", code)
		}

		name := strings.TrimSpace(payload.Competition.Name)
		if name == "" {
			name = fixture.CompetitionName(code)
		}
		league := team.League{Name: name, Teams: make([]team.Team, 0, len(payload.Teams))}
		seen := make(map[string]struct{}, len(payload.Teams))
		for _, t := range payload.Teams {
			entry := team.Team{ID: t.ID, Name: strings.TrimSpace(t.Name), ShortName: strings.TrimSpace(t.ShortName), League: name}
			if err := entry.Validate(); err != nil {
				c.logger.WarnContext(ctx, "skipping invalid team record", "competition", code, "error", err)
				continue
			}
			if _, dup := seen[entry.Name]; dup {
				continue
			}
			seen[entry.Name] = struct{}{}
			league.Teams = append(league.Teams, entry)
		}
		if len(league.Teams) == 0 {
			continue
		}
		total += len(league.Teams)
		leagues = append(leagues, league)
	}

	if total == 0 {
		return 0, crerr.New("no teams fetched for team cache")
	}
	if err := c.cache.Save(ctx, leagues); err != nil {
		return 0, crerr.Wrap(err, "save team cache")
	}

	c.logger.InfoContext(ctx, "team cache refreshed", "leagues", len(leagues), "teams", total)
	return total, nil
}

func (c *Client) mapMatch(ctx context.Context, m apiMatch, teamID int64) fixture.Fixture {
	code := strings.ToUpper(strings.TrimSpace(m.Competition.Code))
	competition := strings.TrimSpace(m.Competition.Name)
	if competition == "" {
		competition = fixture.CompetitionName(code)
	}

	f := fixture.Fixture{
		ID:              strconv.FormatInt(m.ID, 10),
		Competition:     competition,
		CompetitionCode: code,
		Matchday:        m.Matchday,
		HomeTeam:        displayName(m.HomeTeam),
		AwayTeam:        displayName(m.AwayTeam),
		Status:          fixture.NormalizeStatus(m.Status),
		IsHome:          m.HomeTeam.ID == teamID,
	}
	if m.ID <= 0 {
		f.ID = ""
	}
	if m.Venue != nil {
		f.Venue = strings.TrimSpace(*m.Venue)
	}
	if raw := strings.TrimSpace(m.UTCDate); raw != "" {
		kickoff, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.logger.WarnContext(ctx, "unparseable kickoff, treating as tbc", "match_id", m.ID, "utc_date", raw, "error", err)
		} else {
			kickoff = kickoff.UTC()
			f.KickoffAt = &kickoff
		}
	}
	return f
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	}, IsTransient)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return crerr.Mark(crerr.Wrap(err, "football-data temporarily unavailable"), usecase.ErrDependencyUnavailable)
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "decode %s", path), ErrParse)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set(authHeader, c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = crerr.Mark(
				crerr.Mark(crerr.Newf("send request: %s", sanitizeSensitiveText(err.Error(), c.token)), ErrConnection),
				errTransient,
			)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Mark(crerr.Wrap(readErr, "read response body"), ErrConnection), errTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				lastErr = statusError(resp, raw, c.token)
				if !IsTransient(lastErr) {
					return nil, lastErr
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.retryDelay(attempt, lastErr))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("football-data request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

// retryDelay backs off linearly, or waits for the rate-limit window to
// reset when that is known and within maxRetryWait.
func (c *Client) retryDelay(attempt int, err error) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 && rlErr.RetryAfter <= c.maxRetryWait {
		return rlErr.RetryAfter
	}
	return time.Duration(attempt+1) * c.retryBackoff
}

func statusError(resp *http.Response, body []byte, token string) error {
	status := resp.StatusCode
	detail := sanitizeSensitiveText(abbreviateBody(body), token)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return crerr.Mark(crerr.Newf("status=%d body=%s", status, detail), ErrUnauthorized)
	case status == http.StatusNotFound:
		return crerr.Mark(crerr.Newf("status=%d body=%s", status, detail), ErrNotFound)
	case status == http.StatusTooManyRequests:
		return crerr.Mark(&RateLimitError{
			StatusCode: status,
			RetryAfter: parseReset(resp.Header.Get(resetHeader)),
			Message:    "football-data: rate limited",
		}, errTransient)
	case status == http.StatusServiceUnavailable:
		return crerr.Mark(crerr.Mark(crerr.Newf("status=%d body=%s", status, detail), ErrServiceUnavailable), errTransient)
	case status >= http.StatusInternalServerError:
		return crerr.Mark(crerr.Mark(crerr.Newf("status=%d body=%s", status, detail), ErrServer), errTransient)
	default:
		return crerr.Mark(crerr.Newf("status=%d body=%s", status, detail), ErrUnknownAPI)
	}
}

func parseReset(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func allowedCompetitions(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		codes = fixture.DefaultCompetitionCodes
	}
	out := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			out[code] = struct{}{}
		}
	}
	return out
}

func displayName(t apiTeam) string {
	if name := strings.TrimSpace(t.ShortName); name != "" {
		return name
	}
	return strings.TrimSpace(t.Name)
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

const maxBodyDetail = 240

// abbreviateBody cuts the trimmed body at maxBodyDetail bytes, backing off
// to the nearest rune boundary.
func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxBodyDetail {
		return text
	}
	cut := maxBodyDetail
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
