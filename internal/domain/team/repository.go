package team

import "context"

// Directory resolves team names against the local team cache.
type Directory interface {
	Lookup(ctx context.Context, name string) (Team, error)
	TeamsInLeague(ctx context.Context, league string) ([]Team, error)
	Exists() bool
}

// Refresher rebuilds the team cache from the upstream provider and returns
// the number of cached teams.
type Refresher interface {
	RefreshTeams(ctx context.Context, competitions []string) (int, error)
}
