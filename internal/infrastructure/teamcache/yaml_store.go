package teamcache

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/rdawebb/fixture-fetcher/internal/domain/team"
	"github.com/rdawebb/fixture-fetcher/internal/platform/cache"
	"github.com/rdawebb/fixture-fetcher/internal/platform/logging"
	"github.com/rdawebb/fixture-fetcher/internal/usecase"
)

type teamValue struct {
	ID        int64  `yaml:"id"`
	ShortName string `yaml:"short_name"`
}

// Store is the YAML team cache: league name -> team name -> {id, short_name},
// in the order the leagues and teams were fetched.
type Store struct {
	path   string
	parsed *cache.Store[[]team.League]
	logger *logging.Logger
}

func NewStore(path string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		path:   strings.TrimSpace(path),
		parsed: cache.NewStore[[]team.League](0),
		logger: logger,
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Exists() bool {
	if s.path == "" {
		return false
	}
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Lookup resolves name by exact team name first, then case-insensitively
// against names and short names.
func (s *Store) Lookup(ctx context.Context, name string) (team.Team, error) {
	leagues, err := s.load(ctx)
	if err != nil {
		return team.Team{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, crerr.Mark(crerr.New("team name required"), usecase.ErrInvalidInput)
	}

	for _, league := range leagues {
		for _, t := range league.Teams {
			if t.Name == name {
				return t, nil
			}
		}
	}
	for _, league := range leagues {
		for _, t := range league.Teams {
			if strings.EqualFold(t.Name, name) || strings.EqualFold(t.ShortName, name) {
				return t, nil
			}
		}
	}

	return team.Team{}, crerr.Mark(crerr.Newf("team %q not in cache %s", name, s.path), usecase.ErrTeamNotFound)
}

// TeamsInLeague returns the cached teams of the league matched by name or
// slug.
func (s *Store) TeamsInLeague(ctx context.Context, league string) ([]team.Team, error) {
	leagues, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	league = strings.TrimSpace(league)
	for _, l := range leagues {
		if strings.EqualFold(l.Name, league) || (len(l.Teams) > 0 && l.Teams[0].LeagueSlug() == strings.ToLower(league)) {
			out := make([]team.Team, len(l.Teams))
			copy(out, l.Teams)
			return out, nil
		}
	}
	return nil, crerr.Mark(crerr.Newf("league %q not in cache %s", league, s.path), usecase.ErrNotFound)
}

// Leagues returns the whole cache in file order.
func (s *Store) Leagues(ctx context.Context) ([]team.League, error) {
	return s.load(ctx)
}

// Save replaces the cache file with leagues, preserving their order.
func (s *Store) Save(ctx context.Context, leagues []team.League) error {
	if s.path == "" {
		return crerr.New("team cache path required")
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	total := 0
	for _, league := range leagues {
		teams := &yaml.Node{Kind: yaml.MappingNode}
		for _, t := range league.Teams {
			var value yaml.Node
			if err := value.Encode(teamValue{ID: t.ID, ShortName: t.ShortName}); err != nil {
				return crerr.Wrapf(err, "encode team %s", t.Name)
			}
			teams.Content = append(teams.Content, stringNode(t.Name), &value)
			total++
		}
		root.Content = append(root.Content, stringNode(league.Name), teams)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return crerr.Wrap(err, "encode team cache")
	}
	if err := enc.Close(); err != nil {
		return crerr.Wrap(err, "flush team cache")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return crerr.Wrapf(err, "create dir for %s", s.path)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return crerr.Wrapf(err, "write team cache %s", s.path)
	}

	s.parsed.DeletePrefix(ctx, s.cacheKeyPrefix())
	s.logger.InfoContext(ctx, "team cache saved", "path", s.path, "leagues", len(leagues), "teams", total)
	return nil
}

// load parses the cache file once per modification time.
func (s *Store) load(ctx context.Context) ([]team.League, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return s.parse(ctx)
	}
	key := s.cacheKeyPrefix() + strconv.FormatInt(info.ModTime().UnixNano(), 10) + ":" + strconv.FormatInt(info.Size(), 10)
	return s.parsed.GetOrLoad(ctx, key, s.parse)
}

func (s *Store) cacheKeyPrefix() string {
	return s.path + "@"
}

func (s *Store) parse(ctx context.Context) ([]team.League, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, crerr.Mark(crerr.Newf("team cache %s not found, run cache-teams first", s.path), usecase.ErrTeamsCacheUnreadable)
		}
		return nil, crerr.Mark(crerr.Wrapf(err, "read team cache %s", s.path), usecase.ErrTeamsCacheUnreadable)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "parse team cache %s", s.path), usecase.ErrTeamsCacheUnreadable)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, crerr.Mark(crerr.Newf("team cache %s: expected a mapping of leagues", s.path), usecase.ErrTeamsCacheUnreadable)
	}

	leagues := make([]team.League, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		leagueName, teamsNode := root.Content[i].Value, root.Content[i+1]
		if teamsNode.Kind != yaml.MappingNode {
			s.logger.WarnContext(ctx, "skipping malformed league in team cache", "path", s.path, "league", leagueName)
			continue
		}

		league := team.League{Name: leagueName, Teams: make([]team.Team, 0, len(teamsNode.Content)/2)}
		for j := 0; j+1 < len(teamsNode.Content); j += 2 {
			name := teamsNode.Content[j].Value
			var value teamValue
			if err := teamsNode.Content[j+1].Decode(&value); err != nil {
				s.logger.DebugContext(ctx, "skipping malformed team in team cache", "league", leagueName, "team", name)
				continue
			}
			league.Teams = append(league.Teams, team.Team{
				ID:        value.ID,
				Name:      name,
				ShortName: value.ShortName,
				League:    leagueName,
			})
		}
		leagues = append(leagues, league)
	}
	return leagues, nil
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
