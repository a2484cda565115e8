package fixture

import "context"

// Provider fetches the fixtures of one team from an upstream data source.
// An empty competitions slice means the provider's default set; season 0
// means the current season.
type Provider interface {
	FetchFixtures(ctx context.Context, teamName string, competitions []string, season int) ([]Fixture, error)
}
